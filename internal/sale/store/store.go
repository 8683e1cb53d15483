package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectSaleColumns = `
	v.id, v.cliente_id, c.nombre, v.fecha_venta, v.total, v.total_bs,
	v.tasa_cambio_aplicada, v.estado, v.fecha_creacion
`

// unknownCustomer is the display name for sales without a customer row.
const unknownCustomer = "Cliente desconocido"

func scanSale(s scanner) (*sale.Sale, error) {
	var v sale.Sale

	var customerID *uuid.UUID

	var customerName sql.NullString

	var statusStr string

	if err := s.Scan(
		&v.ID, &customerID, &customerName, &v.Date, &v.TotalUSD, &v.TotalBS,
		&v.RateApplied, &statusStr, &v.CreatedAt,
	); err != nil {
		return nil, err
	}

	v.CustomerID = customerID
	v.Status = sale.Status(statusStr)

	v.CustomerName = unknownCustomer
	if customerName.Valid {
		v.CustomerName = customerName.String
	}

	return &v, nil
}

// CreateSale inserts the header and resolves the customer display name in
// the same statement, so the returned record needs no follow-up read.
func (s *Store) CreateSale(ctx context.Context, v *sale.Sale) error {
	query := `
		WITH inserted AS (
			INSERT INTO ventas (cliente_id, fecha_venta, total, total_bs, tasa_cambio_aplicada, estado, fecha_creacion)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id, cliente_id, fecha_creacion
		)
		SELECT i.id, c.nombre, i.fecha_creacion
		FROM inserted i
		LEFT JOIN clientes c ON i.cliente_id = c.id
	`

	var customerName sql.NullString

	err := s.db.QueryRowContext(ctx, query,
		v.CustomerID,
		v.Date,
		v.TotalUSD,
		v.TotalBS,
		v.RateApplied,
		v.Status,
	).Scan(&v.ID, &customerName, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating sale: %w", err)
	}

	v.CustomerName = unknownCustomer
	if customerName.Valid {
		v.CustomerName = customerName.String
	}

	return nil
}

func (s *Store) GetSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + `
		FROM ventas v
		LEFT JOIN clientes c ON v.cliente_id = c.id
		WHERE v.id = $1`

	v, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	return v, nil
}

func (s *Store) ListSales(ctx context.Context, page, limit int) ([]*sale.Sale, int, error) {
	query := `SELECT ` + selectSaleColumns + `
		FROM ventas v
		LEFT JOIN clientes c ON v.cliente_id = c.id
		ORDER BY v.fecha_venta DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	sales, err := collectSales(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ventas`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting sales: %w", err)
	}

	return sales, count, nil
}

// SearchSales matches against sale id and customer name.
func (s *Store) SearchSales(ctx context.Context, query string, page, limit int) ([]*sale.Sale, int, error) {
	pattern := "%" + query + "%"

	listQuery := `SELECT ` + selectSaleColumns + `
		FROM ventas v
		LEFT JOIN clientes c ON v.cliente_id = c.id
		WHERE v.id::text ILIKE $1 OR c.nombre ILIKE $1
		ORDER BY v.fecha_venta DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, listQuery, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("searching sales: %w", err)
	}
	defer rows.Close()

	sales, err := collectSales(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int

	countQuery := `
		SELECT COUNT(*)
		FROM ventas v
		LEFT JOIN clientes c ON v.cliente_id = c.id
		WHERE v.id::text ILIKE $1 OR c.nombre ILIKE $1`
	if err := s.db.QueryRowContext(ctx, countQuery, pattern).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting sales: %w", err)
	}

	return sales, count, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status sale.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE ventas SET estado = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating sale status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating sale status: %w", err)
	}

	if affected == 0 {
		return sale.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteSale(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	if affected == 0 {
		return sale.ErrNotFound
	}

	return nil
}

func (s *Store) CreateItems(ctx context.Context, saleID uuid.UUID, items []*sale.Item) error {
	query := `
		INSERT INTO venta_items (venta_id, producto_id, cantidad, precio_unitario, precio_unitario_bs, subtotal, subtotal_bs)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for _, it := range items {
		it.SaleID = saleID

		err := s.db.QueryRowContext(ctx, query,
			saleID,
			it.ProductID,
			it.Quantity,
			it.UnitPriceUSD,
			it.UnitPriceBS,
			it.SubtotalUSD,
			it.SubtotalBS,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("creating sale item: %w", err)
		}
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context, saleID uuid.UUID) ([]*sale.Item, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, precio_unitario_bs, subtotal, subtotal_bs
		FROM venta_items
		WHERE venta_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listing sale items: %w", err)
	}
	defer rows.Close()

	var items []*sale.Item

	for rows.Next() {
		var it sale.Item
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPriceUSD, &it.UnitPriceBS, &it.SubtotalUSD, &it.SubtotalBS,
		); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}

		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale item rows: %w", err)
	}

	return items, nil
}

func (s *Store) DeleteItems(ctx context.Context, saleID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM venta_items WHERE venta_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("deleting sale items: %w", err)
	}

	return nil
}

func collectSales(rows *sql.Rows) ([]*sale.Sale, error) {
	var sales []*sale.Sale

	for rows.Next() {
		v, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	return sales, nil
}
