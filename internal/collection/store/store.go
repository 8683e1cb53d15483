package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/collection"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCollectionColumns = `
	id, venta_id, monto_pendiente, monto_pendiente_bs, fecha_vencimiento, estado, notas
`

func scanCollection(s scanner) (*collection.Collection, error) {
	var c collection.Collection

	var statusStr string

	var notes sql.NullString

	if err := s.Scan(
		&c.ID, &c.SaleID, &c.PendingUSD, &c.PendingBS, &c.DueDate, &statusStr, &notes,
	); err != nil {
		return nil, err
	}

	c.Status = collection.Status(statusStr)
	c.Notes = notes.String

	return &c, nil
}

func (s *Store) CreateCollection(ctx context.Context, c *collection.Collection) error {
	query := `
		INSERT INTO cobranza (venta_id, monto_pendiente, monto_pendiente_bs, fecha_vencimiento, estado, notas)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		c.SaleID,
		c.PendingUSD,
		c.PendingBS,
		c.DueDate,
		c.Status,
		c.Notes,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

func (s *Store) GetCollection(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	query := `SELECT ` + selectCollectionColumns + ` FROM cobranza WHERE id = $1`

	c, err := scanCollection(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, collection.ErrNotFound
		}

		return nil, fmt.Errorf("getting collection: %w", err)
	}

	return c, nil
}

func (s *Store) ListCollections(ctx context.Context, page, limit int) ([]*collection.Collection, int, error) {
	query := `SELECT ` + selectCollectionColumns + `
		FROM cobranza
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var collections []*collection.Collection

	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning collection: %w", err)
		}

		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating collection rows: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cobranza`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting collections: %w", err)
	}

	return collections, count, nil
}

func (s *Store) UpdateCollection(ctx context.Context, c *collection.Collection) error {
	query := `
		UPDATE cobranza
		SET monto_pendiente = $1, monto_pendiente_bs = $2, fecha_vencimiento = $3, estado = $4, notas = $5
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		c.PendingUSD,
		c.PendingBS,
		c.DueDate,
		c.Status,
		c.Notes,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating collection: %w", err)
	}

	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cobranza WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	return nil
}
