package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// ParamRepo implements ports.ParamRepository. Governance is the only
// writer; services read current values inside their own transactions.
type ParamRepo struct {
	pool Pool
}

// NewParamRepo creates a new ParamRepo.
func NewParamRepo(pool Pool) *ParamRepo {
	return &ParamRepo{pool: pool}
}

// Get reads a parameter value.
func (r *ParamRepo) Get(ctx context.Context, key string) (int64, error) {
	query := `SELECT value FROM params WHERE key = $1`

	var value int64
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.ErrNotFound("parameter " + key)
		}
		return 0, fmt.Errorf("get param %s: %w", key, err)
	}
	return value, nil
}

// Set writes a parameter value within a transaction.
func (r *ParamRepo) Set(ctx context.Context, tx pgx.Tx, key string, value int64) error {
	query := `INSERT INTO params (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := tx.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set param %s: %w", key, err)
	}
	return nil
}

// Seed writes a value only if the key does not exist yet. Used at startup
// so governance-set values survive restarts.
func (r *ParamRepo) Seed(ctx context.Context, key string, value int64) error {
	query := `INSERT INTO params (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("seed param %s: %w", key, err)
	}
	return nil
}
