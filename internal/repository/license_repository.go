package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// LicenseRepository defines persistence access for local license records.
type LicenseRepository interface {
	Create(ctx context.Context, license *domain.LicenseKey) error
	Update(ctx context.Context, license *domain.LicenseKey) error
	GetByID(ctx context.Context, id string) (*domain.LicenseKey, error)
	List(ctx context.Context) ([]*domain.LicenseKey, error)
	ListByPurchaserID(ctx context.Context, purchaserID string) ([]*domain.LicenseKey, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type licenseRepository struct {
	pool *pgxpool.Pool
}

// NewLicenseRepository returns a Postgres-backed implementation.
func NewLicenseRepository(pool *pgxpool.Pool) LicenseRepository {
	return &licenseRepository{pool: pool}
}

const licenseColumns = `id, product_id, purchaser_id, license_key_id, license_type, expiry_date, created_at, updated_at`

func (r *licenseRepository) Create(ctx context.Context, license *domain.LicenseKey) error {
	const query = `
        INSERT INTO license_keys_info (id, product_id, purchaser_id, license_key_id, license_type, expiry_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		license.ID,
		license.ProductID,
		license.PurchaserID,
		license.LicenseKeyID,
		license.LicenseType,
		license.ExpiryDate,
	).Scan(&license.CreatedAt, &license.UpdatedAt)
}

func (r *licenseRepository) Update(ctx context.Context, license *domain.LicenseKey) error {
	const query = `
        UPDATE license_keys_info
        SET product_id=$1, purchaser_id=$2, license_type=$3, expiry_date=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		license.ProductID,
		license.PurchaserID,
		license.LicenseType,
		license.ExpiryDate,
		license.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *licenseRepository) GetByID(ctx context.Context, id string) (*domain.LicenseKey, error) {
	const query = `SELECT ` + licenseColumns + ` FROM license_keys_info WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *licenseRepository) List(ctx context.Context) ([]*domain.LicenseKey, error) {
	const query = `SELECT ` + licenseColumns + ` FROM license_keys_info ORDER BY created_at`
	return r.scanMany(ctx, query)
}

func (r *licenseRepository) ListByPurchaserID(ctx context.Context, purchaserID string) ([]*domain.LicenseKey, error) {
	const query = `SELECT ` + licenseColumns + ` FROM license_keys_info WHERE purchaser_id=$1 ORDER BY created_at`
	return r.scanMany(ctx, query, purchaserID)
}

// DeleteExpired removes records whose expiry is at or before the database
// clock. Evaluated server-side to avoid client clock skew.
func (r *licenseRepository) DeleteExpired(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM license_keys_info WHERE expiry_date <= NOW()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *licenseRepository) scanMany(ctx context.Context, query string, args ...any) ([]*domain.LicenseKey, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var licenses []*domain.LicenseKey
	for rows.Next() {
		license, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		licenses = append(licenses, license)
	}
	return licenses, rows.Err()
}

func (r *licenseRepository) scanOne(row pgx.Row) (*domain.LicenseKey, error) {
	var license domain.LicenseKey
	if err := row.Scan(
		&license.ID,
		&license.ProductID,
		&license.PurchaserID,
		&license.LicenseKeyID,
		&license.LicenseType,
		&license.ExpiryDate,
		&license.CreatedAt,
		&license.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &license, nil
}
