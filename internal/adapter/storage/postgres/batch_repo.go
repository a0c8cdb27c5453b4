package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// BatchRepo implements ports.BatchRepository. A batch spans two tables:
// the batches row holds the header and counters, batch_payments holds one
// row per payee line.
type BatchRepo struct {
	pool Pool
}

// NewBatchRepo creates a new BatchRepo.
func NewBatchRepo(pool Pool) *BatchRepo {
	return &BatchRepo{pool: pool}
}

const batchColumns = `id, reference, owner, sequence, total_amount, claimed_total, claimed_count, status, created_at, processed_at, completed_at`

func scanBatch(row pgx.Row) (*domain.Batch, error) {
	b := &domain.Batch{}
	err := row.Scan(
		&b.ID, &b.Reference, &b.Owner, &b.Sequence,
		&b.TotalAmount, &b.ClaimedTotal, &b.ClaimedCount,
		&b.Status, &b.CreatedAt, &b.ProcessedAt, &b.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a batch and its payment lines within a transaction.
func (r *BatchRepo) Create(ctx context.Context, tx pgx.Tx, batch *domain.Batch) error {
	query := `INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		batch.ID, batch.Reference, batch.Owner, batch.Sequence,
		batch.TotalAmount, batch.ClaimedTotal, batch.ClaimedCount,
		batch.Status, batch.CreatedAt, batch.ProcessedAt, batch.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	paymentQuery := `INSERT INTO batch_payments (batch_id, position, payee, amount, claimed, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, p := range batch.Payments {
		if _, err := tx.Exec(ctx, paymentQuery, batch.ID, i, p.Payee, p.Amount, p.Claimed, p.ClaimedAt); err != nil {
			return fmt.Errorf("insert batch payment: %w", err)
		}
	}
	return nil
}

// Get fetches a batch and its payment lines without locking.
func (r *BatchRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`

	b, err := scanBatch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	rows, err := r.pool.Query(ctx, paymentSelect, id)
	if err != nil {
		return nil, fmt.Errorf("get batch payments: %w", err)
	}
	b.Payments, err = collectPayments(rows)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetForUpdate fetches a batch with a row lock on the header. Payment lines
// are only mutated through the locked header, so locking it is sufficient.
// This MUST be called within a transaction.
func (r *BatchRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`

	b, err := scanBatch(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}

	rows, err := tx.Query(ctx, paymentSelect, id)
	if err != nil {
		return nil, fmt.Errorf("get batch payments: %w", err)
	}
	b.Payments, err = collectPayments(rows)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Payment lines come back in submission order, which payees rely on when
// cross-checking a batch against what they were promised.
const paymentSelect = `SELECT payee, amount, claimed, claimed_at
	FROM batch_payments WHERE batch_id = $1 ORDER BY position`

func collectPayments(rows pgx.Rows) ([]domain.Payment, error) {
	defer rows.Close()
	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.Payee, &p.Amount, &p.Claimed, &p.ClaimedAt); err != nil {
			return nil, fmt.Errorf("scan batch payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch payments: %w", err)
	}
	return payments, nil
}

// UpdateState writes status, timestamps and claim counters within a transaction.
func (r *BatchRepo) UpdateState(ctx context.Context, tx pgx.Tx, batch *domain.Batch) error {
	query := `UPDATE batches
		SET status = $1, claimed_total = $2, claimed_count = $3, processed_at = $4, completed_at = $5
		WHERE id = $6`

	tag, err := tx.Exec(ctx, query,
		batch.Status, batch.ClaimedTotal, batch.ClaimedCount,
		batch.ProcessedAt, batch.CompletedAt, batch.ID,
	)
	if err != nil {
		return fmt.Errorf("update batch state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("batch not found: %s", batch.ID)
	}
	return nil
}

// MarkClaimed flips one payment line to claimed within a transaction.
func (r *BatchRepo) MarkClaimed(ctx context.Context, tx pgx.Tx, batchID, payee uuid.UUID, claimedAt time.Time) error {
	query := `UPDATE batch_payments SET claimed = TRUE, claimed_at = $1
		WHERE batch_id = $2 AND payee = $3 AND claimed = FALSE`

	tag, err := tx.Exec(ctx, query, claimedAt, batchID, payee)
	if err != nil {
		return fmt.Errorf("mark payment claimed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unclaimed payment not found: batch %s payee %s", batchID, payee)
	}
	return nil
}

// NextSequence returns the next per-principal batch sequence number.
// The sequence row is locked by the upsert, serializing concurrent batch
// creation for the same owner.
func (r *BatchRepo) NextSequence(ctx context.Context, tx pgx.Tx, owner uuid.UUID) (int64, error) {
	query := `INSERT INTO batch_sequences (owner, next_seq) VALUES ($1, 1)
		ON CONFLICT (owner) DO UPDATE SET next_seq = batch_sequences.next_seq + 1
		RETURNING next_seq`

	var seq int64
	if err := tx.QueryRow(ctx, query, owner).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next batch sequence: %w", err)
	}
	return seq, nil
}

// ListByOwner fetches the owner's most recent batches, headers only.
func (r *BatchRepo) ListByOwner(ctx context.Context, owner uuid.UUID, limit int) ([]domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches
		WHERE owner = $1 ORDER BY sequence DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []domain.Batch
	for rows.Next() {
		var b domain.Batch
		err := rows.Scan(
			&b.ID, &b.Reference, &b.Owner, &b.Sequence,
			&b.TotalAmount, &b.ClaimedTotal, &b.ClaimedCount,
			&b.Status, &b.CreatedAt, &b.ProcessedAt, &b.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}
