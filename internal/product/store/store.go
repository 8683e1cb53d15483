package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/product"
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

const selectProductColumns = `
	id, nombre_producto, descripcion, precio, precio_bs, stock, categoria, fecha_creacion
`

func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	var desc, cat sql.NullString

	if err := s.Scan(
		&p.ID, &p.Name, &desc, &p.PriceUSD, &p.PriceBS, &p.Stock, &cat, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Description = desc.String
	p.Category = cat.String

	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO inventario (nombre_producto, descripcion, precio, precio_bs, stock, categoria, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, fecha_creacion
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.Description,
		p.PriceUSD,
		p.PriceBS,
		p.Stock,
		p.Category,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM inventario WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, page, limit int) ([]*product.Product, int, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM inventario
		ORDER BY fecha_creacion DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventario`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	return products, count, nil
}

func (s *Store) SearchProducts(ctx context.Context, query string, page, limit int) ([]*product.Product, int, error) {
	pattern := "%" + query + "%"

	listQuery := `SELECT ` + selectProductColumns + `
		FROM inventario
		WHERE nombre_producto ILIKE $1 OR categoria ILIKE $1
		ORDER BY fecha_creacion DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, listQuery, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("searching products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int

	countQuery := `SELECT COUNT(*) FROM inventario WHERE nombre_producto ILIKE $1 OR categoria ILIKE $1`
	if err := s.db.QueryRowContext(ctx, countQuery, pattern).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	return products, count, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE inventario
		SET nombre_producto = $1, descripcion = $2, precio = $3, precio_bs = $4, stock = $5, categoria = $6
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		p.PriceUSD,
		p.PriceBS,
		p.Stock,
		p.Category,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM inventario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}

// DecrementStock issues a conditional update so the check and the write are
// one statement. Two concurrent sales can no longer both pass a stale stock
// read; the losing update simply matches no row.
func (s *Store) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	query := `
		UPDATE inventario
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`

	res, err := s.db.ExecContext(ctx, query, qty, id)
	if err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}

	if affected == 0 {
		// Distinguish a missing product from insufficient stock.
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM inventario WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("checking product existence: %w", err)
		}

		if !exists {
			return product.ErrNotFound
		}

		return &product.InsufficientStockError{ProductID: id}
	}

	return nil
}

func (s *Store) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inventario SET stock = stock + $1 WHERE id = $2`, qty, id)
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}

	if affected == 0 {
		return product.ErrNotFound
	}

	return nil
}

func collectProducts(rows *sql.Rows) ([]*product.Product, error) {
	var products []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
