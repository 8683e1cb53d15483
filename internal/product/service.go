package product

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/currency"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]*Product, int, error)
	SearchProducts(ctx context.Context, query string, page, limit int) ([]*Product, int, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type RateSource interface {
	OfficialRate(ctx context.Context) (float64, error)
}

type Service struct {
	repo  Repository
	rates RateSource
}

func NewService(repo Repository, rates RateSource) *Service {
	return &Service{repo: repo, rates: rates}
}

type CreateParams struct {
	Name        string
	Description string
	PriceUSD    float64
	Stock       int
	Category    string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	rate := s.currentRate(ctx)

	p := &Product{
		Name:        params.Name,
		Description: params.Description,
		PriceUSD:    params.PriceUSD,
		PriceBS:     params.PriceUSD * rate,
		Stock:       params.Stock,
		Category:    params.Category,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

type UpdateParams struct {
	Name        *string
	Description *string
	PriceUSD    *float64
	Stock       *int
	Category    *string
}

// Update applies partial changes. A price change restamps the bolívar
// price with the current official rate.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		p.Name = *params.Name
	}

	if params.Description != nil {
		p.Description = *params.Description
	}

	if params.PriceUSD != nil {
		p.PriceUSD = *params.PriceUSD
		p.PriceBS = *params.PriceUSD * s.currentRate(ctx)
	}

	if params.Stock != nil {
		p.Stock = *params.Stock
	}

	if params.Category != nil {
		p.Category = *params.Category
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*Product, int, error) {
	return s.repo.ListProducts(ctx, page, limit)
}

func (s *Service) Search(ctx context.Context, query string, page, limit int) ([]*Product, int, error) {
	return s.repo.SearchProducts(ctx, query, page, limit)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

// DecrementStock atomically reduces stock, failing with
// InsufficientStockError when the quantity is not available.
func (s *Service) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	return s.repo.DecrementStock(ctx, id, qty)
}

// IncrementStock restores stock consumed by a deleted sale.
func (s *Service) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	return s.repo.IncrementStock(ctx, id, qty)
}

func (s *Service) currentRate(ctx context.Context) float64 {
	rate, err := s.rates.OfficialRate(ctx)
	if err != nil {
		slog.Warn("official rate unavailable, using fallback", "error", err, "fallback", currency.FallbackOfficialRate)
		return currency.FallbackOfficialRate
	}

	return rate
}
