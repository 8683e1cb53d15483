package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/settings"
)

// Both configuration tables hold a single row pinned to a fixed id, so the
// upserts always land on the same row instead of inserting a new one.
var singletonRowID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetCompany(ctx context.Context) (*settings.Company, error) {
	query := `
		SELECT id, nombre_empresa, rif_nit, telefono, email, direccion, logo_url, updated_at
		FROM configuracion_empresa
		LIMIT 1
	`

	var c settings.Company

	var logo sql.NullString

	err := s.db.QueryRowContext(ctx, query).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Address, &logo, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, settings.ErrNoRow
		}

		return nil, fmt.Errorf("getting company settings: %w", err)
	}

	c.LogoURL = logo.String

	return &c, nil
}

func (s *Store) UpsertCompany(ctx context.Context, c *settings.Company) error {
	query := `
		INSERT INTO configuracion_empresa (id, nombre_empresa, rif_nit, telefono, email, direccion, logo_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO UPDATE SET
			nombre_empresa = EXCLUDED.nombre_empresa,
			rif_nit = EXCLUDED.rif_nit,
			telefono = EXCLUDED.telefono,
			email = EXCLUDED.email,
			direccion = EXCLUDED.direccion,
			logo_url = EXCLUDED.logo_url,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		singletonRowID, c.Name, c.TaxID, c.Phone, c.Email, c.Address, c.LogoURL,
	).Scan(&c.ID, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting company settings: %w", err)
	}

	return nil
}

func (s *Store) GetNotifications(ctx context.Context) (*settings.Notifications, error) {
	query := `
		SELECT id, stock_bajo, facturas_vencidas, nuevas_ventas
		FROM configuracion_notificaciones
		LIMIT 1
	`

	var n settings.Notifications

	err := s.db.QueryRowContext(ctx, query).Scan(
		&n.ID, &n.LowStock, &n.OverdueInvoices, &n.NewSales,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, settings.ErrNoRow
		}

		return nil, fmt.Errorf("getting notification settings: %w", err)
	}

	return &n, nil
}

func (s *Store) UpsertNotifications(ctx context.Context, n *settings.Notifications) error {
	query := `
		INSERT INTO configuracion_notificaciones (id, stock_bajo, facturas_vencidas, nuevas_ventas)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			stock_bajo = EXCLUDED.stock_bajo,
			facturas_vencidas = EXCLUDED.facturas_vencidas,
			nuevas_ventas = EXCLUDED.nuevas_ventas
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, singletonRowID, n.LowStock, n.OverdueInvoices, n.NewSales).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("upserting notification settings: %w", err)
	}

	return nil
}
