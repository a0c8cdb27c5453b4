package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// --- Collateral ledger ---

// LedgerService is the collateral ledger's external surface. Every method
// is a single atomic operation: precondition failures reject the whole
// call with no partial state change.
type LedgerService interface {
	Deposit(ctx context.Context, actor domain.Actor, amount int64) (*domain.CollateralAccount, error)
	RequestWithdrawal(ctx context.Context, actor domain.Actor, amount int64) (*domain.WithdrawalRequest, error)
	ExecuteWithdrawal(ctx context.Context, actor domain.Actor) (*domain.CollateralAccount, error)
	CancelWithdrawal(ctx context.Context, actor domain.Actor) error
	// EmergencyWithdraw bypasses the delay; admin-only, for incident response.
	EmergencyWithdraw(ctx context.Context, actor domain.Actor, principal uuid.UUID, amount int64) (*domain.CollateralAccount, error)
	// Slash moves locked collateral to the slashed bucket; slasher role.
	Slash(ctx context.Context, actor domain.Actor, principal uuid.UUID, amount int64, reason string) (*domain.CollateralAccount, error)
	GetAccount(ctx context.Context, principal uuid.UUID) (*domain.CollateralAccount, error)
	GetWithdrawal(ctx context.Context, principal uuid.UUID) (*domain.WithdrawalRequest, error)
}

// CollateralMutator is the narrow tx-scoped surface the settlement engine
// drives. Calls nest inside the caller's transaction: if they fail, the
// whole outer operation rolls back. The returned event is already appended
// in-tx; the caller must hand it to the recorder's Flush after commit.
type CollateralMutator interface {
	LockTx(ctx context.Context, tx pgx.Tx, principal uuid.UUID, amount int64, batchRef string) (*domain.CollateralAccount, *domain.Event, error)
	UnlockTx(ctx context.Context, tx pgx.Tx, principal uuid.UUID, amount int64, batchRef string) (*domain.CollateralAccount, *domain.Event, error)
	// TransferFromLockedTx pays a claim: a permanent exit of funds, unlike UnlockTx.
	TransferFromLockedTx(ctx context.Context, tx pgx.Tx, principal, payee uuid.UUID, amount int64, batchRef string) (*domain.CollateralAccount, *domain.Event, error)
}

// --- Settlement state machine ---

// SettlementService drives batches through
// Pending -> Processing -> {Completed | Failed | TimedOut}.
type SettlementService interface {
	CreateBatch(ctx context.Context, actor domain.Actor, payees []uuid.UUID, amounts []int64) (*domain.Batch, error)
	// Approve requires the oracle-caller role (single-oracle deployments
	// call it directly; otherwise the consensus registry does).
	Approve(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error)
	// Claim pulls the caller's payment line out of locked collateral.
	Claim(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error)
	// Cancel is owner-only and Pending-only.
	Cancel(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error)
	// Fail requires the oracle-caller or fraud-caller role.
	Fail(ctx context.Context, actor domain.Actor, batchID uuid.UUID, reason string) (*domain.Batch, error)
	// Timeout is callable by anyone once the window has elapsed.
	Timeout(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error)
	GetBatch(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error)
	ListBatches(ctx context.Context, owner uuid.UUID, limit int) ([]domain.Batch, error)
}

// SettlementExecutor is the narrow callback the oracle consensus registry
// invokes when a vote tally reaches threshold, inside the registry's own
// transaction. The returned events are appended in-tx; the caller flushes
// them after commit.
type SettlementExecutor interface {
	ApproveTx(ctx context.Context, tx pgx.Tx, batchID uuid.UUID, now time.Time) (*domain.Batch, []*domain.Event, error)
	FailTx(ctx context.Context, tx pgx.Tx, batchID uuid.UUID, reason string, now time.Time) (*domain.Batch, []*domain.Event, error)
}

// --- Oracle consensus registry ---

// OracleService manages stake-weighted oracle membership and per-batch
// threshold voting.
type OracleService interface {
	Register(ctx context.Context, actor domain.Actor, stake int64) (*domain.OracleRecord, error)
	Deregister(ctx context.Context, actor domain.Actor) (*domain.OracleRecord, error)
	Vote(ctx context.Context, actor domain.Actor, batchID uuid.UUID, kind domain.VoteKind, reason string) (*domain.BatchVoteRecord, error)
	SlashOracle(ctx context.Context, actor domain.Actor, oracle uuid.UUID, reason string) (*domain.OracleRecord, error)
	Activate(ctx context.Context, actor domain.Actor, oracle uuid.UUID) (*domain.OracleRecord, error)
	Deactivate(ctx context.Context, actor domain.Actor, oracle uuid.UUID) (*domain.OracleRecord, error)
	SetApprovalThreshold(ctx context.Context, actor domain.Actor, n int64) error
	GetOracle(ctx context.Context, oracle uuid.UUID) (*domain.OracleRecord, error)
	GetVotes(ctx context.Context, batchID uuid.UUID) (*domain.BatchVoteRecord, error)
}

// --- Fraud gate ---

// FraudService screens principals before money-moving actions are admitted.
// A nil return from ValidateTransaction means allowed.
type FraudService interface {
	ValidateTransaction(ctx context.Context, principal uuid.UUID, amount int64) error
	SetLimit(ctx context.Context, actor domain.Actor, limit *domain.FraudLimit) error
	GetLimit(ctx context.Context, principal uuid.UUID) (*domain.FraudLimit, error)
}

// --- Governance ---

// GovernanceService is the M-of-N timelocked workflow that administers
// every runtime parameter and role grant.
type GovernanceService interface {
	Propose(ctx context.Context, actor domain.Actor, kind domain.ProposalKind, payload json.RawMessage, expedited bool) (*domain.Proposal, error)
	ApproveProposal(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Proposal, error)
	ExecuteProposal(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Proposal, error)
	CancelProposal(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Proposal, error)
	GetProposal(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
}

// --- Auth ---

// AuthService registers and authenticates API accounts.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	// ResolveActor loads the account and its role grants.
	ResolveActor(ctx context.Context, accountID uuid.UUID) (domain.Actor, error)
}

// RegisterRequest holds validated input for account registration.
type RegisterRequest struct {
	Username string
	Password string
	Kind     domain.AccountKind
}

// TokenService issues and validates bearer tokens.
type TokenService interface {
	Generate(accountID uuid.UUID, kind domain.AccountKind) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed token claims.
type TokenClaims struct {
	AccountID uuid.UUID
	Kind      domain.AccountKind
}

// HashService handles credential hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// --- Notification fan-out ---

// EventPublisher fans committed events out to external indexers.
// Best-effort: failures are logged, never propagated.
type EventPublisher interface {
	Publish(ctx context.Context, events ...*domain.Event)
}

// EventRecorder appends events inside the mutating transaction and fans
// them out after commit.
type EventRecorder interface {
	Append(ctx context.Context, tx pgx.Tx, events ...*domain.Event) error
	Flush(ctx context.Context, events ...*domain.Event)
}

// --- Velocity windows ---

// VelocityResult is the post-increment window state.
type VelocityResult struct {
	Count  int64
	Amount int64
}

// VelocityStore accumulates per-principal count+amount fixed windows.
type VelocityStore interface {
	Bump(ctx context.Context, principal string, window string, windowDur time.Duration, amount int64) (*VelocityResult, error)
}
