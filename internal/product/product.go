package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

// InsufficientStockError reports a stock decrement that would go below zero.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// Product is one inventory row. Prices are kept in both currencies;
// PriceBS is restamped whenever PriceUSD changes.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceUSD    float64
	PriceBS     float64
	Stock       int
	Category    string
	CreatedAt   time.Time
}
