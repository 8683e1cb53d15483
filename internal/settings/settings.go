package settings

import (
	"time"

	"github.com/google/uuid"
)

// Company is the business profile shown on documents and the configuration page.
type Company struct {
	ID        uuid.UUID
	Name      string
	TaxID     string
	Phone     string
	Email     string
	Address   string
	LogoURL   string
	UpdatedAt *time.Time
}

// Notifications holds the alert toggles.
type Notifications struct {
	ID              uuid.UUID
	LowStock        bool
	OverdueInvoices bool
	NewSales        bool
}
