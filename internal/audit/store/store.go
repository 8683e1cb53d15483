package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elcarbonero/brasa/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO logs (timestamp, user_id, table_name, operation, record_id, query_text, execution_time_ms, error_message)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''))
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Timestamp,
		e.UserID,
		e.Table,
		e.Operation,
		e.RecordID,
		e.Query,
		e.DurationMS,
		e.ErrMessage,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("creating audit entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, page, limit int) ([]*audit.Entry, int, error) {
	query := `
		SELECT id, timestamp, COALESCE(user_id::text, ''), table_name, operation,
			COALESCE(record_id, ''), COALESCE(query_text, ''), COALESCE(execution_time_ms, 0),
			COALESCE(error_message, '')
		FROM logs
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.UserID, &e.Table, &e.Operation,
			&e.RecordID, &e.Query, &e.DurationMS, &e.ErrMessage,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning audit entry: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating audit rows: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM logs`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting audit entries: %w", err)
	}

	return entries, count, nil
}
