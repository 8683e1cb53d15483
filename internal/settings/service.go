package settings

import (
	"context"
	"errors"
)

// ErrNoRow signals that a settings row has not been created yet; the
// service substitutes defaults instead of surfacing it.
var ErrNoRow = errors.New("settings row not found")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=settings
type Repository interface {
	GetCompany(ctx context.Context) (*Company, error)
	UpsertCompany(ctx context.Context, c *Company) error
	GetNotifications(ctx context.Context) (*Notifications, error)
	UpsertNotifications(ctx context.Context, n *Notifications) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Company returns the stored profile, or defaults when none exists yet.
// Defaults are not persisted until the first update.
func (s *Service) Company(ctx context.Context) (*Company, error) {
	c, err := s.repo.GetCompany(ctx)
	if err != nil {
		if errors.Is(err, ErrNoRow) {
			return defaultCompany(), nil
		}

		return nil, err
	}

	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, c *Company) error {
	return s.repo.UpsertCompany(ctx, c)
}

func (s *Service) Notifications(ctx context.Context) (*Notifications, error) {
	n, err := s.repo.GetNotifications(ctx)
	if err != nil {
		if errors.Is(err, ErrNoRow) {
			return &Notifications{LowStock: true, OverdueInvoices: true, NewSales: true}, nil
		}

		return nil, err
	}

	return n, nil
}

func (s *Service) UpdateNotifications(ctx context.Context, n *Notifications) error {
	return s.repo.UpsertNotifications(ctx, n)
}

func defaultCompany() *Company {
	return &Company{
		Name:    "Mi Empresa",
		TaxID:   "J-000000000",
		Phone:   "+58 412 000 0000",
		Email:   "info@miempresa.com",
		Address: "Av. Principal, Ciudad Bolívar, Venezuela",
	}
}
