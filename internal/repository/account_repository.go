package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// AccountRepository defines persistence access for purchaser credential
// records.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.PurchaserAccount) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.PurchaserAccount, error)
	GetByPurchaserID(ctx context.Context, purchaserID string) (*domain.PurchaserAccount, error)
	DeleteByPurchaserID(ctx context.Context, purchaserID string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, purchaser_id, password_hash, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.PurchaserAccount) error {
	const query = `
        INSERT INTO auth_accounts (id, purchaser_id, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.ID,
		account.PurchaserID,
		account.PasswordHash,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE auth_accounts SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.PurchaserAccount, error) {
	const query = `SELECT ` + accountColumns + ` FROM auth_accounts WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByPurchaserID(ctx context.Context, purchaserID string) (*domain.PurchaserAccount, error) {
	const query = `SELECT ` + accountColumns + ` FROM auth_accounts WHERE purchaser_id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, purchaserID))
}

func (r *accountRepository) DeleteByPurchaserID(ctx context.Context, purchaserID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_accounts WHERE purchaser_id=$1`, purchaserID)
	return err
}

func (r *accountRepository) scanOne(row pgx.Row) (*domain.PurchaserAccount, error) {
	var account domain.PurchaserAccount
	if err := row.Scan(
		&account.ID,
		&account.PurchaserID,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
