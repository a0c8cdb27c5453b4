package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// WithdrawalRepo implements ports.WithdrawalRepository. One row per
// principal; the row is replaced on a new request and removed on cancel.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	w := &domain.WithdrawalRequest{}
	err := row.Scan(&w.Principal, &w.Amount, &w.RequestedAt, &w.Executed)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Get fetches the principal's withdrawal request without locking.
func (r *WithdrawalRepo) Get(ctx context.Context, principal uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT principal, amount, requested_at, executed
		FROM withdrawal_requests WHERE principal = $1`

	req, err := scanWithdrawal(r.pool.QueryRow(ctx, query, principal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal request: %w", err)
	}
	return req, nil
}

// GetForUpdate fetches the principal's withdrawal request with a row lock.
// This MUST be called within a transaction.
func (r *WithdrawalRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, principal uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT principal, amount, requested_at, executed
		FROM withdrawal_requests WHERE principal = $1 FOR UPDATE`

	req, err := scanWithdrawal(tx.QueryRow(ctx, query, principal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal request for update: %w", err)
	}
	return req, nil
}

// Upsert writes the principal's withdrawal request within a transaction.
func (r *WithdrawalRepo) Upsert(ctx context.Context, tx pgx.Tx, req *domain.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (principal, amount, requested_at, executed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (principal) DO UPDATE
		SET amount = EXCLUDED.amount, requested_at = EXCLUDED.requested_at, executed = EXCLUDED.executed`

	_, err := tx.Exec(ctx, query, req.Principal, req.Amount, req.RequestedAt, req.Executed)
	if err != nil {
		return fmt.Errorf("upsert withdrawal request: %w", err)
	}
	return nil
}

// Delete removes the principal's withdrawal request within a transaction.
func (r *WithdrawalRepo) Delete(ctx context.Context, tx pgx.Tx, principal uuid.UUID) error {
	query := `DELETE FROM withdrawal_requests WHERE principal = $1`

	if _, err := tx.Exec(ctx, query, principal); err != nil {
		return fmt.Errorf("delete withdrawal request: %w", err)
	}
	return nil
}
