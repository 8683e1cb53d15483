package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/customer"
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

const selectCustomerColumns = `
	id, nombre, email, telefono, direccion, fecha_creacion
`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var email, phone, address sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &email, &phone, &address, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Address = address.String

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO clientes (nombre, email, telefono, direccion, fecha_creacion)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, fecha_creacion
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM clientes WHERE id = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, page, limit int) ([]*customer.Customer, int, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM clientes
		ORDER BY fecha_creacion DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clientes`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting customers: %w", err)
	}

	return customers, count, nil
}

func (s *Store) SearchCustomers(ctx context.Context, query string, page, limit int) ([]*customer.Customer, int, error) {
	pattern := "%" + query + "%"

	listQuery := `SELECT ` + selectCustomerColumns + `
		FROM clientes
		WHERE nombre ILIKE $1 OR email ILIKE $1
		ORDER BY fecha_creacion DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, listQuery, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("searching customers: %w", err)
	}
	defer rows.Close()

	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int

	countQuery := `SELECT COUNT(*) FROM clientes WHERE nombre ILIKE $1 OR email ILIKE $1`
	if err := s.db.QueryRowContext(ctx, countQuery, pattern).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("counting customers: %w", err)
	}

	return customers, count, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE clientes
		SET nombre = $1, email = $2, telefono = $3, direccion = $4
		WHERE id = $5
	`

	_, err := s.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}

func collectCustomers(rows *sql.Rows) ([]*customer.Customer, error) {
	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}
