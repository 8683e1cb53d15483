package collection

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("collection not found")

// Status is the lifecycle state of a receivable.
type Status string

const (
	StatusPending Status = "pendiente"
	StatusPaid    Status = "pagado"
	StatusOverdue Status = "vencido"
)

// Collection is one receivable opened against an approved sale.
type Collection struct {
	ID         uuid.UUID
	SaleID     uuid.UUID
	PendingUSD float64
	PendingBS  float64
	DueDate    *time.Time
	Status     Status
	Notes      string
}
