package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// LedgerServiceImpl implements ports.LedgerService and ports.CollateralMutator.
// All balance mutations run under SELECT ... FOR UPDATE on the principal's
// account row, so the conservation invariant can never be observed violated.
type LedgerServiceImpl struct {
	collRepo   ports.CollateralRepository
	wdRepo     ports.WithdrawalRepository
	params     ports.ParamRepository
	recorder   ports.EventRecorder
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	collRepo ports.CollateralRepository,
	wdRepo ports.WithdrawalRepository,
	params ports.ParamRepository,
	recorder ports.EventRecorder,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		collRepo:   collRepo,
		wdRepo:     wdRepo,
		params:     params,
		recorder:   recorder,
		transactor: transactor,
		log:        log,
	}
}

// balancesPayload is the resulting-balance snapshot every collateral event carries.
type balancesPayload struct {
	Principal      uuid.UUID `json:"principal"`
	Amount         int64     `json:"amount"`
	Available      int64     `json:"available"`
	Locked         int64     `json:"locked"`
	TotalDeposited int64     `json:"total_deposited"`
	TotalWithdrawn int64     `json:"total_withdrawn"`
	TotalSlashed   int64     `json:"total_slashed"`
	BatchRef       string    `json:"batch_ref,omitempty"`
	Payee          string    `json:"payee,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

func snapshot(acct *domain.CollateralAccount, amount int64) balancesPayload {
	return balancesPayload{
		Principal:      acct.Principal,
		Amount:         amount,
		Available:      acct.Available,
		Locked:         acct.Locked,
		TotalDeposited: acct.TotalDeposited,
		TotalWithdrawn: acct.TotalWithdrawn,
		TotalSlashed:   acct.TotalSlashed,
	}
}

// Deposit credits the caller's collateral account, creating it on first use.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, actor domain.Actor, amount int64) (*domain.CollateralAccount, error) {
	if actor.Kind != domain.AccountKindPrincipal {
		return nil, apperror.ErrMissingRole("principal")
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}
	min, err := paramValue(ctx, s.params, domain.ParamMinimumDeposit)
	if err != nil {
		return nil, err
	}
	if amount < min {
		return nil, apperror.ErrDepositBelowMinimum(min)
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	acct, err := s.collRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		acct = domain.NewCollateralAccount(actor.ID, now)
		if err := s.collRepo.Create(ctx, tx, acct); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}

	if err := acct.Deposit(amount); err != nil {
		return nil, err
	}
	acct.UpdatedAt = now
	if err := s.collRepo.UpdateBuckets(ctx, tx, acct); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventDeposit, "account", acct.Principal.String(), &actor.ID, snapshot(acct, amount), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().
		Str("principal", acct.Principal.String()).
		Int64("amount", amount).
		Int64("available", acct.Available).
		Msg("collateral deposited")

	return acct, nil
}

// RequestWithdrawal records a delayed withdrawal. At most one live request
// per principal; the amount must fit in available at request time.
func (s *LedgerServiceImpl) RequestWithdrawal(ctx context.Context, actor domain.Actor, amount int64) (*domain.WithdrawalRequest, error) {
	if actor.Kind != domain.AccountKindPrincipal {
		return nil, apperror.ErrMissingRole("principal")
	}
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	acct, err := s.collRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("collateral account")
	}
	if amount > acct.Available {
		return nil, apperror.ErrInsufficientAvailable()
	}

	existing, err := s.wdRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil && !existing.Executed {
		return nil, apperror.ErrWithdrawalPending()
	}

	now := time.Now().UTC()
	req := &domain.WithdrawalRequest{
		Principal:   actor.ID,
		Amount:      amount,
		RequestedAt: now,
	}
	if err := s.wdRepo.Upsert(ctx, tx, req); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventWithdrawalRequested, "account", actor.ID.String(), &actor.ID, snapshot(acct, amount), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	return req, nil
}

// ExecuteWithdrawal moves a matured request's amount from available to
// totalWithdrawn. Available is re-validated: intervening locks may have
// shrunk it below the requested amount.
func (s *LedgerServiceImpl) ExecuteWithdrawal(ctx context.Context, actor domain.Actor) (*domain.CollateralAccount, error) {
	if actor.Kind != domain.AccountKindPrincipal {
		return nil, apperror.ErrMissingRole("principal")
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}
	delay, err := paramDuration(ctx, s.params, domain.ParamWithdrawalDelaySecs)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	acct, err := s.collRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("collateral account")
	}

	req, err := s.wdRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if req == nil || req.Executed {
		return nil, apperror.ErrNoPendingWithdrawal()
	}

	now := time.Now().UTC()
	if !req.Executable(now, delay) {
		return nil, apperror.ErrWithdrawalDelayNotElapsed()
	}

	if err := acct.Withdraw(req.Amount); err != nil {
		return nil, err
	}
	acct.UpdatedAt = now
	if err := s.collRepo.UpdateBuckets(ctx, tx, acct); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	req.Executed = true
	if err := s.wdRepo.Upsert(ctx, tx, req); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventWithdrawalExecuted, "account", actor.ID.String(), &actor.ID, snapshot(acct, req.Amount), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().
		Str("principal", actor.ID.String()).
		Int64("amount", req.Amount).
		Msg("withdrawal executed")

	return acct, nil
}

// CancelWithdrawal clears a pending, unexecuted request. No balance effect.
func (s *LedgerServiceImpl) CancelWithdrawal(ctx context.Context, actor domain.Actor) error {
	if actor.Kind != domain.AccountKindPrincipal {
		return apperror.ErrMissingRole("principal")
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	req, err := s.wdRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if req == nil || req.Executed {
		return apperror.ErrNoPendingWithdrawal()
	}

	if err := s.wdRepo.Delete(ctx, tx, actor.ID); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	now := time.Now().UTC()
	ev := domain.NewEvent(domain.EventWithdrawalCancelled, "account", actor.ID.String(), &actor.ID,
		balancesPayload{Principal: actor.ID, Amount: req.Amount}, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	return nil
}

// EmergencyWithdraw bypasses the delay for incident response. Admin-only;
// not gated by the pause switch.
func (s *LedgerServiceImpl) EmergencyWithdraw(ctx context.Context, actor domain.Actor, principal uuid.UUID, amount int64) (*domain.CollateralAccount, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	acct, err := s.collRepo.GetForUpdate(ctx, tx, principal)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("collateral account")
	}

	if err := acct.Withdraw(amount); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	acct.UpdatedAt = now
	if err := s.collRepo.UpdateBuckets(ctx, tx, acct); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	payload := snapshot(acct, amount)
	payload.Reason = "emergency"
	ev := domain.NewEvent(domain.EventWithdrawalExecuted, "account", principal.String(), &actor.ID, payload, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Warn().
		Str("principal", principal.String()).
		Str("admin", actor.ID.String()).
		Int64("amount", amount).
		Msg("emergency withdrawal executed")

	return acct, nil
}

// Slash forfeits locked collateral to the treasury. Slasher role; allowed
// while paused (administrative recovery path).
func (s *LedgerServiceImpl) Slash(ctx context.Context, actor domain.Actor, principal uuid.UUID, amount int64, reason string) (*domain.CollateralAccount, error) {
	if !actor.HasRole(domain.RoleSlasher) {
		return nil, apperror.ErrMissingRole(string(domain.RoleSlasher))
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	acct, err := s.collRepo.GetForUpdate(ctx, tx, principal)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("collateral account")
	}

	if err := acct.Slash(amount); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	acct.UpdatedAt = now
	if err := s.collRepo.UpdateBuckets(ctx, tx, acct); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	payload := snapshot(acct, amount)
	payload.Reason = reason
	ev := domain.NewEvent(domain.EventCollateralSlashed, "account", principal.String(), &actor.ID, payload, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Warn().
		Str("principal", principal.String()).
		Int64("amount", amount).
		Str("reason", reason).
		Msg("collateral slashed")

	return acct, nil
}

// GetAccount returns the principal's collateral account.
func (s *LedgerServiceImpl) GetAccount(ctx context.Context, principal uuid.UUID) (*domain.CollateralAccount, error) {
	acct, err := s.collRepo.Get(ctx, principal)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("collateral account")
	}
	return acct, nil
}

// GetWithdrawal returns the principal's live withdrawal request, if any.
func (s *LedgerServiceImpl) GetWithdrawal(ctx context.Context, principal uuid.UUID) (*domain.WithdrawalRequest, error) {
	req, err := s.wdRepo.Get(ctx, principal)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if req == nil || req.Executed {
		return nil, apperror.ErrNoPendingWithdrawal()
	}
	return req, nil
}

// --- ports.CollateralMutator (tx-scoped, settlement engine only) ---
//
// These run inside the settlement engine's transaction; the mutator is
// handed only to the settlement service at wiring time, which is what
// restricts the lock/unlock/transfer entry points to that role. The event
// each call returns is appended in-tx but can only be fanned out once the
// caller's transaction commits, so the caller owns the Flush.

// LockTx moves amount from available to locked against a batch.
func (s *LedgerServiceImpl) LockTx(ctx context.Context, tx pgx.Tx, principal uuid.UUID, amount int64, batchRef string) (*domain.CollateralAccount, *domain.Event, error) {
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, nil, err
	}
	return s.mutateLocked(ctx, tx, principal, batchRef, domain.EventCollateralLocked, amount,
		func(a *domain.CollateralAccount) error { return a.Lock(amount) })
}

// UnlockTx returns amount from locked to available.
func (s *LedgerServiceImpl) UnlockTx(ctx context.Context, tx pgx.Tx, principal uuid.UUID, amount int64, batchRef string) (*domain.CollateralAccount, *domain.Event, error) {
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, nil, err
	}
	return s.mutateLocked(ctx, tx, principal, batchRef, domain.EventCollateralUnlocked, amount,
		func(a *domain.CollateralAccount) error { return a.Unlock(amount) })
}

// TransferFromLockedTx pays a claim out of locked collateral: a permanent
// exit of funds from the ledger.
func (s *LedgerServiceImpl) TransferFromLockedTx(ctx context.Context, tx pgx.Tx, principal, payee uuid.UUID, amount int64, batchRef string) (*domain.CollateralAccount, *domain.Event, error) {
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, nil, err
	}
	return s.mutateLocked(ctx, tx, principal, batchRef, domain.EventCollateralPaid, amount,
		func(a *domain.CollateralAccount) error { return a.PayFromLocked(amount) })
}

// mutateLocked is the shared FOR UPDATE read-mutate-write-event cycle of
// the tx-scoped entry points.
func (s *LedgerServiceImpl) mutateLocked(
	ctx context.Context,
	tx pgx.Tx,
	principal uuid.UUID,
	batchRef string,
	eventType domain.EventType,
	amount int64,
	mutate func(*domain.CollateralAccount) error,
) (*domain.CollateralAccount, *domain.Event, error) {
	acct, err := s.collRepo.GetForUpdate(ctx, tx, principal)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, nil, apperror.ErrNotFound("collateral account")
	}

	if err := mutate(acct); err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	acct.UpdatedAt = now
	if err := s.collRepo.UpdateBuckets(ctx, tx, acct); err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	payload := snapshot(acct, amount)
	payload.BatchRef = batchRef
	ev := domain.NewEvent(eventType, "account", principal.String(), nil, payload, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	return acct, ev, nil
}
