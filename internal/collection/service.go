package collection

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/currency"
	"github.com/elcarbonero/brasa/internal/sale"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=collection
type Repository interface {
	CreateCollection(ctx context.Context, c *Collection) error
	GetCollection(ctx context.Context, id uuid.UUID) (*Collection, error)
	ListCollections(ctx context.Context, page, limit int) ([]*Collection, int, error)
	UpdateCollection(ctx context.Context, c *Collection) error
	DeleteCollection(ctx context.Context, id uuid.UUID) error
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
	SaleID     uuid.UUID
	PendingUSD float64
	DueDate    *time.Time
	Notes      string
}

// Create opens a receivable, stamping the bolívar figure with the current
// official rate.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Collection, error) {
	rate, err := s.rates.OfficialRate(ctx)
	if err != nil {
		slog.Warn("official rate unavailable, using fallback", "error", err, "fallback", currency.FallbackOfficialRate)
		rate = currency.FallbackOfficialRate
	}

	c := &Collection{
		SaleID:     params.SaleID,
		PendingUSD: params.PendingUSD,
		PendingBS:  params.PendingUSD * rate,
		DueDate:    params.DueDate,
		Status:     StatusPending,
		Notes:      params.Notes,
	}
	if err := s.repo.CreateCollection(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// OpenForSale opens a receivable for a completed sale. The bolívar figure
// reuses the rate stamped on the sale, so both records stay consistent even
// when the rate has since moved.
func (s *Service) OpenForSale(ctx context.Context, v *sale.Sale) error {
	c := &Collection{
		SaleID:     v.ID,
		PendingUSD: v.TotalUSD,
		PendingBS:  v.TotalUSD * v.RateApplied,
		Status:     StatusPending,
	}

	return s.repo.CreateCollection(ctx, c)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Collection, error) {
	return s.repo.GetCollection(ctx, id)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*Collection, int, error) {
	return s.repo.ListCollections(ctx, page, limit)
}

func (s *Service) Update(ctx context.Context, c *Collection) error {
	return s.repo.UpdateCollection(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCollection(ctx, id)
}
