package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, acct *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Username == acct.Username {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	cp := *acct
	r.accounts[acct.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Role Repo ---

type inMemoryRoleRepo struct {
	mu     sync.RWMutex
	grants map[uuid.UUID]map[domain.Role]bool
}

func newInMemoryRoleRepo() *inMemoryRoleRepo {
	return &inMemoryRoleRepo{grants: make(map[uuid.UUID]map[domain.Role]bool)}
}

func (r *inMemoryRoleRepo) Grant(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, role domain.Role, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grants[accountID] == nil {
		r.grants[accountID] = make(map[domain.Role]bool)
	}
	r.grants[accountID][role] = true
	return nil
}

func (r *inMemoryRoleRepo) Revoke(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grants[accountID], role)
	return nil
}

func (r *inMemoryRoleRepo) ListRoles(ctx context.Context, accountID uuid.UUID) ([]domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var roles []domain.Role
	for role := range r.grants[accountID] {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles, nil
}

// --- In-Memory Collateral Repo ---

type inMemoryCollateralRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.CollateralAccount
}

func newInMemoryCollateralRepo() *inMemoryCollateralRepo {
	return &inMemoryCollateralRepo{accounts: make(map[uuid.UUID]*domain.CollateralAccount)}
}

func (r *inMemoryCollateralRepo) Create(ctx context.Context, tx pgx.Tx, acct *domain.CollateralAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *acct
	r.accounts[acct.Principal] = &cp
	return nil
}

func (r *inMemoryCollateralRepo) Get(ctx context.Context, principal uuid.UUID) (*domain.CollateralAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[principal]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryCollateralRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, principal uuid.UUID) (*domain.CollateralAccount, error) {
	return r.Get(ctx, principal)
}

func (r *inMemoryCollateralRepo) UpdateBuckets(ctx context.Context, tx pgx.Tx, acct *domain.CollateralAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[acct.Principal]; !ok {
		return fmt.Errorf("collateral account not found")
	}
	cp := *acct
	r.accounts[acct.Principal] = &cp
	return nil
}

// --- In-Memory Withdrawal Repo ---

type inMemoryWithdrawalRepo struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*domain.WithdrawalRequest
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo {
	return &inMemoryWithdrawalRepo{requests: make(map[uuid.UUID]*domain.WithdrawalRequest)}
}

func (r *inMemoryWithdrawalRepo) Get(ctx context.Context, principal uuid.UUID) (*domain.WithdrawalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.requests[principal]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWithdrawalRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, principal uuid.UUID) (*domain.WithdrawalRequest, error) {
	return r.Get(ctx, principal)
}

func (r *inMemoryWithdrawalRepo) Upsert(ctx context.Context, tx pgx.Tx, req *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.Principal] = &cp
	return nil
}

func (r *inMemoryWithdrawalRepo) Delete(ctx context.Context, tx pgx.Tx, principal uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, principal)
	return nil
}

// --- In-Memory Batch Repo ---

type inMemoryBatchRepo struct {
	mu        sync.RWMutex
	batches   map[uuid.UUID]*domain.Batch
	sequences map[uuid.UUID]int64
}

func newInMemoryBatchRepo() *inMemoryBatchRepo {
	return &inMemoryBatchRepo{
		batches:   make(map[uuid.UUID]*domain.Batch),
		sequences: make(map[uuid.UUID]int64),
	}
}

func copyBatch(b *domain.Batch) *domain.Batch {
	cp := *b
	cp.Payments = make([]domain.Payment, len(b.Payments))
	copy(cp.Payments, b.Payments)
	return &cp
}

func (r *inMemoryBatchRepo) Create(ctx context.Context, tx pgx.Tx, batch *domain.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[batch.ID] = copyBatch(batch)
	return nil
}

func (r *inMemoryBatchRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	return copyBatch(b), nil
}

func (r *inMemoryBatchRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Batch, error) {
	return r.Get(ctx, id)
}

func (r *inMemoryBatchRepo) UpdateState(ctx context.Context, tx pgx.Tx, batch *domain.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.batches[batch.ID]
	if !ok {
		return fmt.Errorf("batch not found")
	}
	stored.Status = batch.Status
	stored.ClaimedTotal = batch.ClaimedTotal
	stored.ClaimedCount = batch.ClaimedCount
	stored.ProcessedAt = batch.ProcessedAt
	stored.CompletedAt = batch.CompletedAt
	return nil
}

func (r *inMemoryBatchRepo) MarkClaimed(ctx context.Context, tx pgx.Tx, batchID, payee uuid.UUID, claimedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[batchID]
	if !ok {
		return fmt.Errorf("batch not found")
	}
	for i := range b.Payments {
		if b.Payments[i].Payee == payee {
			// Mirrors the conditional UPDATE: an already claimed line
			// is not matched.
			if b.Payments[i].Claimed {
				return fmt.Errorf("unclaimed payment not found")
			}
			at := claimedAt
			b.Payments[i].Claimed = true
			b.Payments[i].ClaimedAt = &at
			return nil
		}
	}
	return fmt.Errorf("unclaimed payment not found")
}

func (r *inMemoryBatchRepo) NextSequence(ctx context.Context, tx pgx.Tx, owner uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequences[owner]++
	return r.sequences[owner], nil
}

func (r *inMemoryBatchRepo) ListByOwner(ctx context.Context, owner uuid.UUID, limit int) ([]domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Batch
	for _, b := range r.batches {
		if b.Owner == owner {
			out = append(out, *copyBatch(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence > out[j].Sequence })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- In-Memory Oracle Repo ---

type inMemoryOracleRepo struct {
	mu      sync.RWMutex
	oracles map[uuid.UUID]*domain.OracleRecord
}

func newInMemoryOracleRepo() *inMemoryOracleRepo {
	return &inMemoryOracleRepo{oracles: make(map[uuid.UUID]*domain.OracleRecord)}
}

func (r *inMemoryOracleRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.OracleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.oracles[rec.Oracle] = &cp
	return nil
}

func (r *inMemoryOracleRepo) Get(ctx context.Context, oracle uuid.UUID) (*domain.OracleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.oracles[oracle]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryOracleRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, oracle uuid.UUID) (*domain.OracleRecord, error) {
	return r.Get(ctx, oracle)
}

func (r *inMemoryOracleRepo) Update(ctx context.Context, tx pgx.Tx, rec *domain.OracleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.oracles[rec.Oracle]; !ok {
		return fmt.Errorf("oracle not found")
	}
	cp := *rec
	r.oracles[rec.Oracle] = &cp
	return nil
}

func (r *inMemoryOracleRepo) CountActive(ctx context.Context, tx pgx.Tx) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, rec := range r.oracles {
		if rec.IsRegistered && rec.IsActive {
			n++
		}
	}
	return n, nil
}

// --- In-Memory Vote Repo ---

type voteKey struct {
	batch  uuid.UUID
	oracle uuid.UUID
}

type inMemoryVoteRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.BatchVoteRecord
	casts   map[voteKey]*domain.VoteCast
}

func newInMemoryVoteRepo() *inMemoryVoteRepo {
	return &inMemoryVoteRepo{
		records: make(map[uuid.UUID]*domain.BatchVoteRecord),
		casts:   make(map[voteKey]*domain.VoteCast),
	}
}

func (r *inMemoryVoteRepo) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, batchID uuid.UUID) (*domain.BatchVoteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[batchID]
	if !ok {
		rec = &domain.BatchVoteRecord{BatchID: batchID}
		r.records[batchID] = rec
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryVoteRepo) HasVoted(ctx context.Context, tx pgx.Tx, batchID, oracle uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.casts[voteKey{batchID, oracle}]
	return ok, nil
}

func (r *inMemoryVoteRepo) RecordCast(ctx context.Context, tx pgx.Tx, cast *domain.VoteCast) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey{cast.BatchID, cast.Oracle}
	// Mirrors the primary key on (batch, oracle).
	if _, ok := r.casts[key]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	cp := *cast
	r.casts[key] = &cp
	return nil
}

func (r *inMemoryVoteRepo) Update(ctx context.Context, tx pgx.Tx, rec *domain.BatchVoteRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.BatchID]; !ok {
		return fmt.Errorf("vote record not found")
	}
	cp := *rec
	r.records[rec.BatchID] = &cp
	return nil
}

func (r *inMemoryVoteRepo) Get(ctx context.Context, batchID uuid.UUID) (*domain.BatchVoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[batchID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// --- In-Memory Event Repo ---

type inMemoryEventRepo struct {
	mu     sync.RWMutex
	events []domain.Event
}

func newInMemoryEventRepo() *inMemoryEventRepo {
	return &inMemoryEventRepo{}
}

func (r *inMemoryEventRepo) Create(ctx context.Context, tx pgx.Tx, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *inMemoryEventRepo) List(ctx context.Context, entityType, entityID string, limit int) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Event
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// --- In-Memory Param Repo ---

type inMemoryParamRepo struct {
	mu     sync.RWMutex
	params map[string]int64
}

func newInMemoryParamRepo() *inMemoryParamRepo {
	return &inMemoryParamRepo{params: make(map[string]int64)}
}

func (r *inMemoryParamRepo) Get(ctx context.Context, key string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.params[key]
	if !ok {
		return 0, fmt.Errorf("parameter %s not found", key)
	}
	return v, nil
}

func (r *inMemoryParamRepo) Set(ctx context.Context, tx pgx.Tx, key string, value int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params[key] = value
	return nil
}

func (r *inMemoryParamRepo) Seed(ctx context.Context, key string, value int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.params[key]; !ok {
		r.params[key] = value
	}
	return nil
}

// --- In-Memory Proposal Repo ---

type approvalKey struct {
	proposal uuid.UUID
	signer   uuid.UUID
}

type inMemoryProposalRepo struct {
	mu        sync.RWMutex
	proposals map[uuid.UUID]*domain.Proposal
	approvals map[approvalKey]bool
}

func newInMemoryProposalRepo() *inMemoryProposalRepo {
	return &inMemoryProposalRepo{
		proposals: make(map[uuid.UUID]*domain.Proposal),
		approvals: make(map[approvalKey]bool),
	}
}

func (r *inMemoryProposalRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *inMemoryProposalRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryProposalRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Proposal, error) {
	return r.Get(ctx, id)
}

func (r *inMemoryProposalRepo) Update(ctx context.Context, tx pgx.Tx, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[p.ID]; !ok {
		return fmt.Errorf("proposal not found")
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *inMemoryProposalRepo) HasApproved(ctx context.Context, tx pgx.Tx, proposalID, signer uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approvals[approvalKey{proposalID, signer}], nil
}

func (r *inMemoryProposalRepo) RecordApproval(ctx context.Context, tx pgx.Tx, proposalID, signer uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approvals[approvalKey{proposalID, signer}] = true
	return nil
}

// --- In-Memory Fraud Limit Repo ---

type inMemoryFraudLimitRepo struct {
	mu     sync.RWMutex
	limits map[uuid.UUID]*domain.FraudLimit
}

func newInMemoryFraudLimitRepo() *inMemoryFraudLimitRepo {
	return &inMemoryFraudLimitRepo{limits: make(map[uuid.UUID]*domain.FraudLimit)}
}

func (r *inMemoryFraudLimitRepo) Get(ctx context.Context, principal uuid.UUID) (*domain.FraudLimit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.limits[principal]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *inMemoryFraudLimitRepo) Upsert(ctx context.Context, limit *domain.FraudLimit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *limit
	r.limits[limit.Principal] = &cp
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
