package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepo) Create(ctx context.Context, acct *domain.Account) error {
	query := `INSERT INTO accounts (id, username, password_hash, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		acct.ID, acct.Username, acct.PasswordHash, acct.Kind, acct.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by its UUID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, username, password_hash, kind, created_at
		FROM accounts WHERE id = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get account by id")
}

// GetByUsername fetches an account by username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT id, username, password_hash, kind, created_at
		FROM accounts WHERE username = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, username), "get account by username")
}

func (r *AccountRepo) scanOne(row pgx.Row, op string) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Kind, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
