package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// FraudLimitRepo implements ports.FraudLimitRepository.
type FraudLimitRepo struct {
	pool Pool
}

// NewFraudLimitRepo creates a new FraudLimitRepo.
func NewFraudLimitRepo(pool Pool) *FraudLimitRepo {
	return &FraudLimitRepo{pool: pool}
}

// Get fetches a principal's fraud limit overrides. Nil means no overrides.
func (r *FraudLimitRepo) Get(ctx context.Context, principal uuid.UUID) (*domain.FraudLimit, error) {
	query := `SELECT principal, list_status, hourly_max_count, hourly_max_amount,
			daily_max_count, daily_max_amount, updated_at
		FROM fraud_limits WHERE principal = $1`

	l := &domain.FraudLimit{}
	err := r.pool.QueryRow(ctx, query, principal).Scan(
		&l.Principal, &l.ListStatus, &l.HourlyMaxCount, &l.HourlyMaxAmount,
		&l.DailyMaxCount, &l.DailyMaxAmount, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fraud limit: %w", err)
	}
	return l, nil
}

// Upsert writes a principal's fraud limit overrides.
func (r *FraudLimitRepo) Upsert(ctx context.Context, limit *domain.FraudLimit) error {
	query := `INSERT INTO fraud_limits (principal, list_status, hourly_max_count, hourly_max_amount,
			daily_max_count, daily_max_amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (principal) DO UPDATE
		SET list_status = EXCLUDED.list_status,
			hourly_max_count = EXCLUDED.hourly_max_count,
			hourly_max_amount = EXCLUDED.hourly_max_amount,
			daily_max_count = EXCLUDED.daily_max_count,
			daily_max_amount = EXCLUDED.daily_max_amount,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		limit.Principal, limit.ListStatus, limit.HourlyMaxCount, limit.HourlyMaxAmount,
		limit.DailyMaxCount, limit.DailyMaxAmount, limit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert fraud limit: %w", err)
	}
	return nil
}
