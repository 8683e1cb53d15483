package sale

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/currency"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=sale
type Repository interface {
	CreateSale(ctx context.Context, s *Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	ListSales(ctx context.Context, page, limit int) ([]*Sale, int, error)
	SearchSales(ctx context.Context, query string, page, limit int) ([]*Sale, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteSale(ctx context.Context, id uuid.UUID) error

	CreateItems(ctx context.Context, saleID uuid.UUID, items []*Item) error
	ListItems(ctx context.Context, saleID uuid.UUID) ([]*Item, error)
	DeleteItems(ctx context.Context, saleID uuid.UUID) error
}

// Inventory is the stock side of the sale workflow. DecrementStock must be
// atomic and conditional: it fails instead of letting stock go negative.
type Inventory interface {
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error
	IncrementStock(ctx context.Context, productID uuid.UUID, qty int) error
}

type RateSource interface {
	OfficialRate(ctx context.Context) (float64, error)
}

// Collections opens a receivable for an approved sale.
type Collections interface {
	OpenForSale(ctx context.Context, s *Sale) error
}

// Auditor records operations to the audit trail. Implementations must not
// fail the business operation.
type Auditor interface {
	Action(ctx context.Context, table, operation, recordID string)
	Failure(ctx context.Context, table, operation, message string)
}

type Service struct {
	repo        Repository
	inventory   Inventory
	rates       RateSource
	collections Collections
	auditor     Auditor
}

func NewService(repo Repository, inventory Inventory, rates RateSource, collections Collections, auditor Auditor) *Service {
	return &Service{
		repo:        repo,
		inventory:   inventory,
		rates:       rates,
		collections: collections,
		auditor:     auditor,
	}
}

type ItemParams struct {
	ProductID    *uuid.UUID
	Quantity     int
	UnitPriceUSD float64
}

type CreateParams struct {
	CustomerID *uuid.UUID
	Date       time.Time
	Status     Status
	Items      []ItemParams
}

// Create runs the sale creation workflow: resolve the official rate, stamp
// bolívar figures, insert the header, insert the items, then reserve stock
// per item. There is no database transaction spanning the steps; any failure
// after the header insert triggers explicit compensating deletes of
// everything written so far, in reverse order.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Sale, error) {
	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	for _, it := range params.Items {
		if it.Quantity <= 0 {
			return nil, ErrBadQty
		}
	}

	rate := s.currentRate(ctx)

	items := make([]*Item, len(params.Items))

	var totalUSD float64

	for i, p := range params.Items {
		subtotalUSD := float64(p.Quantity) * p.UnitPriceUSD
		items[i] = &Item{
			ProductID:    p.ProductID,
			Quantity:     p.Quantity,
			UnitPriceUSD: p.UnitPriceUSD,
			UnitPriceBS:  p.UnitPriceUSD * rate,
			SubtotalUSD:  subtotalUSD,
			SubtotalBS:   subtotalUSD * rate,
		}
		totalUSD += subtotalUSD
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	header := &Sale{
		CustomerID:  params.CustomerID,
		Date:        date,
		TotalUSD:    totalUSD,
		TotalBS:     totalUSD * rate,
		RateApplied: rate,
		Status:      status,
	}

	if err := s.repo.CreateSale(ctx, header); err != nil {
		s.failure(ctx, "INSERT", err.Error())
		return nil, fmt.Errorf("creating sale: %w", err)
	}

	if err := s.repo.CreateItems(ctx, header.ID, items); err != nil {
		if rbErr := s.repo.DeleteSale(ctx, header.ID); rbErr != nil {
			s.reportRollbackFailure(ctx, header.ID, rbErr)
		}

		s.failure(ctx, "INSERT", err.Error())

		return nil, fmt.Errorf("creating sale items: %w", err)
	}

	for i, it := range items {
		if it.ProductID == nil {
			continue
		}

		if err := s.inventory.DecrementStock(ctx, *it.ProductID, it.Quantity); err != nil {
			s.rollbackCreate(ctx, header.ID, items[:i])
			s.failure(ctx, "INSERT", err.Error())

			return nil, fmt.Errorf("reserving stock: %w", err)
		}
	}

	s.action(ctx, "INSERT", header.ID)

	return header, nil
}

// rollbackCreate undoes a partially created sale: restore the stock already
// reserved, then delete the items and the header.
func (s *Service) rollbackCreate(ctx context.Context, saleID uuid.UUID, reserved []*Item) {
	for _, it := range reserved {
		if it.ProductID == nil {
			continue
		}

		if err := s.inventory.IncrementStock(ctx, *it.ProductID, it.Quantity); err != nil {
			s.reportRollbackFailure(ctx, saleID, err)
		}
	}

	if err := s.repo.DeleteItems(ctx, saleID); err != nil {
		s.reportRollbackFailure(ctx, saleID, err)
	}

	if err := s.repo.DeleteSale(ctx, saleID); err != nil {
		s.reportRollbackFailure(ctx, saleID, err)
	}
}

// Delete removes a sale after restoring the stock its items consumed. A
// failed restoration aborts before any row is deleted, so the sale stays
// intact. Stock restored for earlier items of the same request is not
// re-reversed on a later failure.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return fmt.Errorf("listing sale items: %w", err)
	}

	for _, it := range items {
		if it.ProductID == nil {
			continue
		}

		if err := s.inventory.IncrementStock(ctx, *it.ProductID, it.Quantity); err != nil {
			s.failure(ctx, "DELETE", err.Error())
			return fmt.Errorf("restoring stock for product %s: %w", *it.ProductID, err)
		}
	}

	if err := s.repo.DeleteItems(ctx, id); err != nil {
		s.failure(ctx, "DELETE", err.Error())
		return fmt.Errorf("deleting sale items: %w", err)
	}

	if err := s.repo.DeleteSale(ctx, id); err != nil {
		s.failure(ctx, "DELETE", err.Error())
		return fmt.Errorf("deleting sale: %w", err)
	}

	s.action(ctx, "DELETE", id)

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Sale, []*Item, error) {
	header, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("listing sale items: %w", err)
	}

	return header, items, nil
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*Sale, int, error) {
	return s.repo.ListSales(ctx, page, limit)
}

func (s *Service) Search(ctx context.Context, query string, page, limit int) ([]*Sale, int, error) {
	return s.repo.SearchSales(ctx, query, page, limit)
}

// UpdateStatus changes the sale status. Completing a sale opens a
// receivable for its total. Totals are not recomputed on status changes.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	header, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.failure(ctx, "UPDATE", err.Error())
		return fmt.Errorf("updating sale status: %w", err)
	}

	if status == StatusCompleted && header.Status != StatusCompleted {
		header.Status = status
		if err := s.collections.OpenForSale(ctx, header); err != nil {
			// The status write already went through: the sale is completed
			// but has no receivable, so leave a trail for reconciliation.
			slog.Error("sale completed without receivable", "sale_id", id, "error", err)
			s.failure(ctx, "UPDATE", fmt.Sprintf("sale %s completed without receivable: %s", id, err))

			return fmt.Errorf("opening collection for sale %s: %w", id, err)
		}
	}

	return nil
}

func (s *Service) currentRate(ctx context.Context) float64 {
	rate, err := s.rates.OfficialRate(ctx)
	if err != nil {
		slog.Warn("official rate unavailable, using fallback", "error", err, "fallback", currency.FallbackOfficialRate)
		return currency.FallbackOfficialRate
	}

	return rate
}

// reportRollbackFailure surfaces a failed compensating write. The primary
// error has already been decided at this point; a rollback failure means
// orphaned rows or stock drift, so it is flagged loudly instead of being
// folded into the returned error.
func (s *Service) reportRollbackFailure(ctx context.Context, saleID uuid.UUID, err error) {
	slog.Error("sale rollback failed, data may be inconsistent", "sale_id", saleID, "error", err)
	s.failure(ctx, "ROLLBACK", fmt.Sprintf("sale %s: %s", saleID, err))
}

func (s *Service) action(ctx context.Context, operation string, recordID uuid.UUID) {
	if s.auditor != nil {
		s.auditor.Action(ctx, "ventas", operation, recordID.String())
	}
}

func (s *Service) failure(ctx context.Context, operation, message string) {
	if s.auditor != nil {
		s.auditor.Failure(ctx, "ventas", operation, message)
	}
}
