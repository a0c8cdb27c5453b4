package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// OracleRepo implements ports.OracleRepository.
type OracleRepo struct {
	pool Pool
}

// NewOracleRepo creates a new OracleRepo.
func NewOracleRepo(pool Pool) *OracleRepo {
	return &OracleRepo{pool: pool}
}

const oracleColumns = `oracle, is_registered, is_active, stake, approvals_cast, rejections_cast, slash_count, registered_at, last_activity_at`

func scanOracle(row pgx.Row) (*domain.OracleRecord, error) {
	o := &domain.OracleRecord{}
	err := row.Scan(
		&o.Oracle, &o.IsRegistered, &o.IsActive, &o.Stake,
		&o.ApprovalsCast, &o.RejectionsCast, &o.SlashCount,
		&o.RegisteredAt, &o.LastActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new oracle record within a transaction.
func (r *OracleRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.OracleRecord) error {
	query := `INSERT INTO oracles (` + oracleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		rec.Oracle, rec.IsRegistered, rec.IsActive, rec.Stake,
		rec.ApprovalsCast, rec.RejectionsCast, rec.SlashCount,
		rec.RegisteredAt, rec.LastActivityAt,
	)
	if err != nil {
		return fmt.Errorf("insert oracle: %w", err)
	}
	return nil
}

// Get fetches an oracle record without locking.
func (r *OracleRepo) Get(ctx context.Context, oracle uuid.UUID) (*domain.OracleRecord, error) {
	query := `SELECT ` + oracleColumns + ` FROM oracles WHERE oracle = $1`

	rec, err := scanOracle(r.pool.QueryRow(ctx, query, oracle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get oracle: %w", err)
	}
	return rec, nil
}

// GetForUpdate fetches an oracle record with a row lock.
// This MUST be called within a transaction.
func (r *OracleRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, oracle uuid.UUID) (*domain.OracleRecord, error) {
	query := `SELECT ` + oracleColumns + ` FROM oracles WHERE oracle = $1 FOR UPDATE`

	rec, err := scanOracle(tx.QueryRow(ctx, query, oracle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get oracle for update: %w", err)
	}
	return rec, nil
}

// Update writes an oracle record within a transaction.
func (r *OracleRepo) Update(ctx context.Context, tx pgx.Tx, rec *domain.OracleRecord) error {
	query := `UPDATE oracles
		SET is_registered = $1, is_active = $2, stake = $3,
			approvals_cast = $4, rejections_cast = $5, slash_count = $6,
			registered_at = $7, last_activity_at = $8
		WHERE oracle = $9`

	tag, err := tx.Exec(ctx, query,
		rec.IsRegistered, rec.IsActive, rec.Stake,
		rec.ApprovalsCast, rec.RejectionsCast, rec.SlashCount,
		rec.RegisteredAt, rec.LastActivityAt, rec.Oracle,
	)
	if err != nil {
		return fmt.Errorf("update oracle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("oracle not found: %s", rec.Oracle)
	}
	return nil
}

// CountActive counts registered, active oracles within a transaction.
func (r *OracleRepo) CountActive(ctx context.Context, tx pgx.Tx) (int64, error) {
	query := `SELECT COUNT(*) FROM oracles WHERE is_registered = TRUE AND is_active = TRUE`

	var n int64
	if err := tx.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active oracles: %w", err)
	}
	return n, nil
}
