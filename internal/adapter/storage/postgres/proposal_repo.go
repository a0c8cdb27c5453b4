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

// ProposalRepo implements ports.ProposalRepository.
type ProposalRepo struct {
	pool Pool
}

// NewProposalRepo creates a new ProposalRepo.
func NewProposalRepo(pool Pool) *ProposalRepo {
	return &ProposalRepo{pool: pool}
}

const proposalColumns = `id, kind, payload, proposer, threshold, approval_count, status, expedited, created_at, eta, expires_at, executed_at`

func scanProposal(row pgx.Row) (*domain.Proposal, error) {
	p := &domain.Proposal{}
	err := row.Scan(
		&p.ID, &p.Kind, &p.Payload, &p.Proposer,
		&p.Threshold, &p.ApprovalCount, &p.Status, &p.Expedited,
		&p.CreatedAt, &p.ETA, &p.ExpiresAt, &p.ExecutedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new proposal within a transaction.
func (r *ProposalRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Proposal) error {
	query := `INSERT INTO governance_proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		p.ID, p.Kind, p.Payload, p.Proposer,
		p.Threshold, p.ApprovalCount, p.Status, p.Expedited,
		p.CreatedAt, p.ETA, p.ExpiresAt, p.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

// Get fetches a proposal without locking.
func (r *ProposalRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM governance_proposals WHERE id = $1`

	p, err := scanProposal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return p, nil
}

// GetForUpdate fetches a proposal with a row lock.
// This MUST be called within a transaction.
func (r *ProposalRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM governance_proposals WHERE id = $1 FOR UPDATE`

	p, err := scanProposal(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal for update: %w", err)
	}
	return p, nil
}

// Update writes proposal status and counters within a transaction.
func (r *ProposalRepo) Update(ctx context.Context, tx pgx.Tx, p *domain.Proposal) error {
	query := `UPDATE governance_proposals
		SET approval_count = $1, status = $2, executed_at = $3
		WHERE id = $4`

	tag, err := tx.Exec(ctx, query, p.ApprovalCount, p.Status, p.ExecutedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("proposal not found: %s", p.ID)
	}
	return nil
}

// HasApproved reports whether the signer has already approved the proposal.
func (r *ProposalRepo) HasApproved(ctx context.Context, tx pgx.Tx, proposalID, signer uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM proposal_approvals WHERE proposal_id = $1 AND signer = $2)`

	var exists bool
	if err := tx.QueryRow(ctx, query, proposalID, signer).Scan(&exists); err != nil {
		return false, fmt.Errorf("check proposal approval: %w", err)
	}
	return exists, nil
}

// RecordApproval inserts one signer's approval within a transaction.
func (r *ProposalRepo) RecordApproval(ctx context.Context, tx pgx.Tx, proposalID, signer uuid.UUID, at time.Time) error {
	query := `INSERT INTO proposal_approvals (proposal_id, signer, approved_at)
		VALUES ($1, $2, $3)`

	if _, err := tx.Exec(ctx, query, proposalID, signer, at); err != nil {
		return fmt.Errorf("insert proposal approval: %w", err)
	}
	return nil
}
