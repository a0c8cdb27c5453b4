package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// CollateralRepo implements ports.CollateralRepository.
type CollateralRepo struct {
	pool Pool
}

// NewCollateralRepo creates a new CollateralRepo.
func NewCollateralRepo(pool Pool) *CollateralRepo {
	return &CollateralRepo{pool: pool}
}

const collateralColumns = `principal, total_deposited, available, locked, total_withdrawn, total_slashed, created_at, updated_at`

func scanCollateral(row pgx.Row) (*domain.CollateralAccount, error) {
	a := &domain.CollateralAccount{}
	err := row.Scan(
		&a.Principal, &a.TotalDeposited, &a.Available, &a.Locked,
		&a.TotalWithdrawn, &a.TotalSlashed, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new collateral account within a transaction.
func (r *CollateralRepo) Create(ctx context.Context, tx pgx.Tx, acct *domain.CollateralAccount) error {
	query := `INSERT INTO collateral_accounts (` + collateralColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		acct.Principal, acct.TotalDeposited, acct.Available, acct.Locked,
		acct.TotalWithdrawn, acct.TotalSlashed, acct.CreatedAt, acct.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert collateral account: %w", err)
	}
	return nil
}

// Get fetches a collateral account without locking.
func (r *CollateralRepo) Get(ctx context.Context, principal uuid.UUID) (*domain.CollateralAccount, error) {
	query := `SELECT ` + collateralColumns + ` FROM collateral_accounts WHERE principal = $1`

	acct, err := scanCollateral(r.pool.QueryRow(ctx, query, principal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collateral account: %w", err)
	}
	return acct, nil
}

// GetForUpdate fetches a collateral account with a row lock.
// This MUST be called within a transaction.
func (r *CollateralRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, principal uuid.UUID) (*domain.CollateralAccount, error) {
	query := `SELECT ` + collateralColumns + ` FROM collateral_accounts WHERE principal = $1 FOR UPDATE`

	acct, err := scanCollateral(tx.QueryRow(ctx, query, principal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collateral account for update: %w", err)
	}
	return acct, nil
}

// UpdateBuckets writes the balance buckets within a transaction.
func (r *CollateralRepo) UpdateBuckets(ctx context.Context, tx pgx.Tx, acct *domain.CollateralAccount) error {
	query := `UPDATE collateral_accounts
		SET total_deposited = $1, available = $2, locked = $3,
			total_withdrawn = $4, total_slashed = $5, updated_at = NOW()
		WHERE principal = $6`

	tag, err := tx.Exec(ctx, query,
		acct.TotalDeposited, acct.Available, acct.Locked,
		acct.TotalWithdrawn, acct.TotalSlashed, acct.Principal,
	)
	if err != nil {
		return fmt.Errorf("update collateral buckets: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collateral account not found: %s", acct.Principal)
	}
	return nil
}
