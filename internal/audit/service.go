package audit

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=audit
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, page, limit int) ([]*Entry, int, error)
}

// Service writes the operations trail. A broken trail must never break a
// business operation, so write failures are logged and swallowed.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if e.UserID == "" {
		e.UserID = UserFromContext(ctx)
	}

	if err := s.repo.CreateEntry(ctx, &e); err != nil {
		slog.Warn("failed to write audit entry", "table", e.Table, "operation", e.Operation, "error", err)
	}
}

// Action records a successful mutation against a table.
func (s *Service) Action(ctx context.Context, table, operation, recordID string) {
	s.Record(ctx, Entry{Table: table, Operation: operation, RecordID: recordID})
}

// Failure records a failed operation with its error message.
func (s *Service) Failure(ctx context.Context, table, operation, message string) {
	s.Record(ctx, Entry{Table: table, Operation: operation, ErrMessage: message})
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*Entry, int, error) {
	return s.repo.ListEntries(ctx, page, limit)
}
