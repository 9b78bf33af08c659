package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// PurchaserRepository defines persistence access for purchaser profiles.
type PurchaserRepository interface {
	Create(ctx context.Context, purchaser *domain.Purchaser) error
	Update(ctx context.Context, purchaser *domain.Purchaser) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Purchaser, error)
	GetByPersonalEmail(ctx context.Context, email string) (*domain.Purchaser, error)
	GetByCorporateEmail(ctx context.Context, email string) (*domain.Purchaser, error)
	List(ctx context.Context) ([]*domain.Purchaser, error)
}

type purchaserRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaserRepository returns a Postgres-backed implementation.
func NewPurchaserRepository(pool *pgxpool.Pool) PurchaserRepository {
	return &purchaserRepository{pool: pool}
}

const purchaserColumns = `id, firstname, middlename, lastname, personal_email, personal_phone,
        company, corporate_email, corporate_phone, field_of_activity, position, created_at, updated_at`

func (r *purchaserRepository) Create(ctx context.Context, purchaser *domain.Purchaser) error {
	const query = `
        INSERT INTO purchasers (id, firstname, middlename, lastname, personal_email, personal_phone,
            company, corporate_email, corporate_phone, field_of_activity, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		purchaser.ID,
		purchaser.Firstname,
		purchaser.Middlename,
		purchaser.Lastname,
		purchaser.PersonalEmail,
		purchaser.PersonalPhone,
		purchaser.Company,
		purchaser.CorporateEmail,
		purchaser.CorporatePhone,
		purchaser.FieldOfActivity,
		purchaser.Position,
	).Scan(&purchaser.CreatedAt, &purchaser.UpdatedAt)
}

func (r *purchaserRepository) Update(ctx context.Context, purchaser *domain.Purchaser) error {
	const query = `
        UPDATE purchasers
        SET firstname=$1, middlename=$2, lastname=$3, personal_email=$4, personal_phone=$5,
            company=$6, corporate_email=$7, corporate_phone=$8, field_of_activity=$9, position=$10,
            updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		purchaser.Firstname,
		purchaser.Middlename,
		purchaser.Lastname,
		purchaser.PersonalEmail,
		purchaser.PersonalPhone,
		purchaser.Company,
		purchaser.CorporateEmail,
		purchaser.CorporatePhone,
		purchaser.FieldOfActivity,
		purchaser.Position,
		purchaser.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaserRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM purchasers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaserRepository) GetByID(ctx context.Context, id string) (*domain.Purchaser, error) {
	const query = `SELECT ` + purchaserColumns + ` FROM purchasers WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *purchaserRepository) GetByPersonalEmail(ctx context.Context, email string) (*domain.Purchaser, error) {
	const query = `SELECT ` + purchaserColumns + ` FROM purchasers WHERE personal_email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *purchaserRepository) GetByCorporateEmail(ctx context.Context, email string) (*domain.Purchaser, error) {
	const query = `SELECT ` + purchaserColumns + ` FROM purchasers WHERE corporate_email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *purchaserRepository) List(ctx context.Context) ([]*domain.Purchaser, error) {
	const query = `SELECT ` + purchaserColumns + ` FROM purchasers ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchasers []*domain.Purchaser
	for rows.Next() {
		purchaser, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		purchasers = append(purchasers, purchaser)
	}
	return purchasers, rows.Err()
}

func (r *purchaserRepository) scanOne(row pgx.Row) (*domain.Purchaser, error) {
	var purchaser domain.Purchaser
	if err := row.Scan(
		&purchaser.ID,
		&purchaser.Firstname,
		&purchaser.Middlename,
		&purchaser.Lastname,
		&purchaser.PersonalEmail,
		&purchaser.PersonalPhone,
		&purchaser.Company,
		&purchaser.CorporateEmail,
		&purchaser.CorporatePhone,
		&purchaser.FieldOfActivity,
		&purchaser.Position,
		&purchaser.CreatedAt,
		&purchaser.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &purchaser, nil
}
