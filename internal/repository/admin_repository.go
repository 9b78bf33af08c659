package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// AdminRepository defines persistence access for administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.AdminAccount) error
	Update(ctx context.Context, admin *domain.AdminAccount) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.AdminAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminAccount, error)
	List(ctx context.Context) ([]*domain.AdminAccount, error)
	Count(ctx context.Context) (int64, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, firstname, middlename, lastname, personal_email, position, password_hash, created_at, updated_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.AdminAccount) error {
	const query = `
        INSERT INTO adm_accounts (id, firstname, middlename, lastname, personal_email, position, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Firstname,
		admin.Middlename,
		admin.Lastname,
		admin.PersonalEmail,
		admin.Position,
		admin.PasswordHash,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.AdminAccount) error {
	const query = `
        UPDATE adm_accounts
        SET firstname=$1, middlename=$2, lastname=$3, personal_email=$4, position=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		admin.Firstname,
		admin.Middlename,
		admin.Lastname,
		admin.PersonalEmail,
		admin.Position,
		admin.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE adm_accounts SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.AdminAccount, error) {
	const query = `SELECT ` + adminColumns + ` FROM adm_accounts WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminAccount, error) {
	const query = `SELECT ` + adminColumns + ` FROM adm_accounts WHERE personal_email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *adminRepository) List(ctx context.Context) ([]*domain.AdminAccount, error) {
	const query = `SELECT ` + adminColumns + ` FROM adm_accounts ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*domain.AdminAccount
	for rows.Next() {
		admin, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM adm_accounts`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *adminRepository) scanOne(row pgx.Row) (*domain.AdminAccount, error) {
	var admin domain.AdminAccount
	if err := row.Scan(
		&admin.ID,
		&admin.Firstname,
		&admin.Middlename,
		&admin.Lastname,
		&admin.PersonalEmail,
		&admin.Position,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
