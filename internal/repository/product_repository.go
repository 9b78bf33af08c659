package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// ProductRepository defines persistence access for software products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.SoftwareProduct) error
	Update(ctx context.Context, product *domain.SoftwareProduct) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SoftwareProduct, error)
	List(ctx context.Context) ([]*domain.SoftwareProduct, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, vendor, product_area, product_type, product_name, description, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.SoftwareProduct) error {
	const query = `
        INSERT INTO software_products (id, vendor, product_area, product_type, product_name, description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.ID,
		product.Vendor,
		product.ProductArea,
		product.ProductType,
		product.ProductName,
		product.Description,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.SoftwareProduct) error {
	const query = `
        UPDATE software_products
        SET vendor=$1, product_area=$2, product_type=$3, product_name=$4, description=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		product.Vendor,
		product.ProductArea,
		product.ProductType,
		product.ProductName,
		product.Description,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM software_products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.SoftwareProduct, error) {
	const query = `SELECT ` + productColumns + ` FROM software_products WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) List(ctx context.Context) ([]*domain.SoftwareProduct, error) {
	const query = `SELECT ` + productColumns + ` FROM software_products ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.SoftwareProduct
	for rows.Next() {
		product, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) scanOne(row pgx.Row) (*domain.SoftwareProduct, error) {
	var product domain.SoftwareProduct
	if err := row.Scan(
		&product.ID,
		&product.Vendor,
		&product.ProductArea,
		&product.ProductType,
		&product.ProductName,
		&product.Description,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
