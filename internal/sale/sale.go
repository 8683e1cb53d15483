package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("sale not found")
	ErrNoItems  = errors.New("sale must have at least one item")
	ErrBadQty   = errors.New("item quantity must be positive")
)

// Status is the lifecycle state of a sale.
type Status string

const (
	StatusPending    Status = "pendiente"
	StatusProcessing Status = "procesando"
	StatusShipped    Status = "enviado"
	StatusCompleted  Status = "completado"
	StatusCancelled  Status = "cancelado"
)

// Sale is the header record of one transaction. Monetary figures are kept
// in both currencies; RateApplied is the official rate at creation time and
// is never recomputed afterwards.
type Sale struct {
	ID           uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	Date         time.Time
	TotalUSD     float64
	TotalBS      float64
	RateApplied  float64
	Status       Status
	CreatedAt    time.Time
}

// Item is one product-quantity-price line belonging to a sale. The sale owns
// its items: deleting the sale deletes them all.
type Item struct {
	ID           uuid.UUID
	SaleID       uuid.UUID
	ProductID    *uuid.UUID
	Quantity     int
	UnitPriceUSD float64
	UnitPriceBS  float64
	SubtotalUSD  float64
	SubtotalBS   float64
}
