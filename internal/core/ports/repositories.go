package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// DBTransactor provides database transaction management. Every mutating
// service operation runs inside exactly one transaction; cross-component
// calls share the same pgx.Tx so the whole operation commits or rolls back
// as a unit.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CollateralRepository persists per-principal collateral accounts.
// ForUpdate variants take a row lock and must run inside a transaction.
type CollateralRepository interface {
	Create(ctx context.Context, tx pgx.Tx, acct *domain.CollateralAccount) error
	Get(ctx context.Context, principal uuid.UUID) (*domain.CollateralAccount, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, principal uuid.UUID) (*domain.CollateralAccount, error)
	UpdateBuckets(ctx context.Context, tx pgx.Tx, acct *domain.CollateralAccount) error
}

// WithdrawalRepository persists the single live withdrawal request slot
// per principal.
type WithdrawalRepository interface {
	Get(ctx context.Context, principal uuid.UUID) (*domain.WithdrawalRequest, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, principal uuid.UUID) (*domain.WithdrawalRequest, error)
	Upsert(ctx context.Context, tx pgx.Tx, req *domain.WithdrawalRequest) error
	Delete(ctx context.Context, tx pgx.Tx, principal uuid.UUID) error
}

// BatchRepository persists batches and their payment lines. Batches are
// append-only; no delete.
type BatchRepository interface {
	Create(ctx context.Context, tx pgx.Tx, batch *domain.Batch) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Batch, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Batch, error)
	// UpdateState writes status, timestamps and claim counters.
	UpdateState(ctx context.Context, tx pgx.Tx, batch *domain.Batch) error
	// MarkClaimed flips one payment line to claimed.
	MarkClaimed(ctx context.Context, tx pgx.Tx, batchID, payee uuid.UUID, claimedAt time.Time) error
	// NextSequence returns the next per-principal batch sequence number.
	NextSequence(ctx context.Context, tx pgx.Tx, owner uuid.UUID) (int64, error)
	ListByOwner(ctx context.Context, owner uuid.UUID, limit int) ([]domain.Batch, error)
}

// OracleRepository persists oracle registrations.
type OracleRepository interface {
	Create(ctx context.Context, tx pgx.Tx, rec *domain.OracleRecord) error
	Get(ctx context.Context, oracle uuid.UUID) (*domain.OracleRecord, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, oracle uuid.UUID) (*domain.OracleRecord, error)
	Update(ctx context.Context, tx pgx.Tx, rec *domain.OracleRecord) error
	CountActive(ctx context.Context, tx pgx.Tx) (int64, error)
}

// VoteRepository persists batch vote records and individual casts.
type VoteRepository interface {
	// GetOrCreateForUpdate locks the batch's vote record, creating an empty
	// one on first vote.
	GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, batchID uuid.UUID) (*domain.BatchVoteRecord, error)
	HasVoted(ctx context.Context, tx pgx.Tx, batchID, oracle uuid.UUID) (bool, error)
	RecordCast(ctx context.Context, tx pgx.Tx, cast *domain.VoteCast) error
	Update(ctx context.Context, tx pgx.Tx, rec *domain.BatchVoteRecord) error
	Get(ctx context.Context, batchID uuid.UUID) (*domain.BatchVoteRecord, error)
}

// EventRepository is the append-only notification log.
type EventRepository interface {
	Create(ctx context.Context, tx pgx.Tx, event *domain.Event) error
	List(ctx context.Context, entityType, entityID string, limit int) ([]domain.Event, error)
}

// ParamRepository is the runtime parameter store. Governance is the sole
// writer; services read inside their own transactions.
type ParamRepository interface {
	Get(ctx context.Context, key string) (int64, error)
	Set(ctx context.Context, tx pgx.Tx, key string, value int64) error
	// Seed writes a value only if the key does not exist yet.
	Seed(ctx context.Context, key string, value int64) error
}

// RoleRepository persists role grants.
type RoleRepository interface {
	Grant(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, role domain.Role, at time.Time) error
	Revoke(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, role domain.Role) error
	ListRoles(ctx context.Context, accountID uuid.UUID) ([]domain.Role, error)
}

// AccountRepository persists API accounts.
type AccountRepository interface {
	Create(ctx context.Context, acct *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// ProposalRepository persists governance proposals and their approvals.
type ProposalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, p *domain.Proposal) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Proposal, error)
	Update(ctx context.Context, tx pgx.Tx, p *domain.Proposal) error
	HasApproved(ctx context.Context, tx pgx.Tx, proposalID, signer uuid.UUID) (bool, error)
	RecordApproval(ctx context.Context, tx pgx.Tx, proposalID, signer uuid.UUID, at time.Time) error
}

// FraudLimitRepository persists per-principal fraud overrides.
type FraudLimitRepository interface {
	Get(ctx context.Context, principal uuid.UUID) (*domain.FraudLimit, error)
	Upsert(ctx context.Context, limit *domain.FraudLimit) error
}
