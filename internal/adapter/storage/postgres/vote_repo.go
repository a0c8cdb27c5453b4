package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// VoteRepo implements ports.VoteRepository. The batch_votes row carries the
// tallies, batch_vote_casts records each oracle's vote with a unique
// (batch, oracle) pair.
type VoteRepo struct {
	pool Pool
}

// NewVoteRepo creates a new VoteRepo.
func NewVoteRepo(pool Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// GetOrCreateForUpdate locks the batch's vote record, inserting an empty
// one on first vote. This MUST be called within a transaction.
func (r *VoteRepo) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, batchID uuid.UUID) (*domain.BatchVoteRecord, error) {
	insert := `INSERT INTO batch_votes (batch_id, approval_count, rejection_count, processed)
		VALUES ($1, 0, 0, FALSE)
		ON CONFLICT (batch_id) DO NOTHING`
	if _, err := tx.Exec(ctx, insert, batchID); err != nil {
		return nil, fmt.Errorf("ensure vote record: %w", err)
	}

	query := `SELECT batch_id, approval_count, rejection_count, processed
		FROM batch_votes WHERE batch_id = $1 FOR UPDATE`

	rec := &domain.BatchVoteRecord{}
	err := tx.QueryRow(ctx, query, batchID).Scan(
		&rec.BatchID, &rec.ApprovalCount, &rec.RejectionCount, &rec.Processed,
	)
	if err != nil {
		return nil, fmt.Errorf("get vote record for update: %w", err)
	}
	return rec, nil
}

// HasVoted reports whether the oracle has already cast a vote on the batch.
func (r *VoteRepo) HasVoted(ctx context.Context, tx pgx.Tx, batchID, oracle uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM batch_vote_casts WHERE batch_id = $1 AND oracle = $2)`

	var exists bool
	if err := tx.QueryRow(ctx, query, batchID, oracle).Scan(&exists); err != nil {
		return false, fmt.Errorf("check vote cast: %w", err)
	}
	return exists, nil
}

// RecordCast inserts one oracle's vote within a transaction.
func (r *VoteRepo) RecordCast(ctx context.Context, tx pgx.Tx, cast *domain.VoteCast) error {
	query := `INSERT INTO batch_vote_casts (batch_id, oracle, kind, reason, cast_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, cast.BatchID, cast.Oracle, cast.Kind, cast.Reason, cast.CastAt)
	if err != nil {
		return fmt.Errorf("insert vote cast: %w", err)
	}
	return nil
}

// Update writes the vote tallies within a transaction.
func (r *VoteRepo) Update(ctx context.Context, tx pgx.Tx, rec *domain.BatchVoteRecord) error {
	query := `UPDATE batch_votes
		SET approval_count = $1, rejection_count = $2, processed = $3
		WHERE batch_id = $4`

	tag, err := tx.Exec(ctx, query, rec.ApprovalCount, rec.RejectionCount, rec.Processed, rec.BatchID)
	if err != nil {
		return fmt.Errorf("update vote record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vote record not found: %s", rec.BatchID)
	}
	return nil
}

// Get fetches the batch's vote record without locking.
func (r *VoteRepo) Get(ctx context.Context, batchID uuid.UUID) (*domain.BatchVoteRecord, error) {
	query := `SELECT batch_id, approval_count, rejection_count, processed
		FROM batch_votes WHERE batch_id = $1`

	rec := &domain.BatchVoteRecord{}
	err := r.pool.QueryRow(ctx, query, batchID).Scan(
		&rec.BatchID, &rec.ApprovalCount, &rec.RejectionCount, &rec.Processed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vote record: %w", err)
	}
	return rec, nil
}
