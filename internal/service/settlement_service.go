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

// approvalWindow is how long a Pending batch stays approvable before only
// Timeout remains. Measured from createdAt.
const approvalWindow = 48 * time.Hour

// SettlementServiceImpl implements ports.SettlementService and
// ports.SettlementExecutor. Each operation is one transaction; collateral
// moves nest in it through the CollateralMutator, so a failed lock or
// transfer rolls the whole batch operation back.
type SettlementServiceImpl struct {
	batchRepo  ports.BatchRepository
	collateral ports.CollateralMutator
	params     ports.ParamRepository
	recorder   ports.EventRecorder
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	batchRepo ports.BatchRepository,
	collateral ports.CollateralMutator,
	params ports.ParamRepository,
	recorder ports.EventRecorder,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		batchRepo:  batchRepo,
		collateral: collateral,
		params:     params,
		recorder:   recorder,
		transactor: transactor,
		log:        log,
	}
}

type batchPayload struct {
	BatchID   uuid.UUID  `json:"batch_id"`
	Reference string     `json:"reference"`
	Owner     uuid.UUID  `json:"owner"`
	Status    string     `json:"status"`
	Total     int64      `json:"total"`
	Claimed   int64      `json:"claimed"`
	Payee     *uuid.UUID `json:"payee,omitempty"`
	Amount    int64      `json:"amount,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

func batchSnapshot(b *domain.Batch) batchPayload {
	return batchPayload{
		BatchID:   b.ID,
		Reference: b.Reference,
		Owner:     b.Owner,
		Status:    string(b.Status),
		Total:     b.TotalAmount,
		Claimed:   b.ClaimedTotal,
	}
}

// CreateBatch validates the payee/amount pairs, locks the owner's collateral
// for the total and records a Pending batch, all in one transaction.
func (s *SettlementServiceImpl) CreateBatch(ctx context.Context, actor domain.Actor, payees []uuid.UUID, amounts []int64) (*domain.Batch, error) {
	if actor.Kind != domain.AccountKindPrincipal {
		return nil, apperror.ErrMissingRole("principal")
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}
	maxSize, err := paramValue(ctx, s.params, domain.ParamMaxBatchSize)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	seq, err := s.batchRepo.NextSequence(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	batch, err := domain.NewBatch(actor.ID, seq, payees, amounts, maxSize, now)
	if err != nil {
		return nil, err
	}

	_, lockEv, err := s.collateral.LockTx(ctx, tx, actor.ID, batch.TotalAmount, batch.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.batchRepo.Create(ctx, tx, batch); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventBatchCreated, "batch", batch.ID.String(), &actor.ID, batchSnapshot(batch), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, lockEv, ev)

	s.log.Info().
		Str("batch", batch.Reference).
		Str("owner", actor.ID.String()).
		Int("payments", len(batch.Payments)).
		Int64("total", batch.TotalAmount).
		Msg("batch created")

	return batch, nil
}

// Approve moves a Pending batch to Processing. Single-oracle deployments
// call this directly with the oracle-caller role; multi-oracle deployments
// reach ApproveTx through the consensus registry instead.
func (s *SettlementServiceImpl) Approve(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error) {
	if !actor.HasRole(domain.RoleOracleCaller) {
		return nil, apperror.ErrMissingRole(string(domain.RoleOracleCaller))
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch, events, err := s.ApproveTx(ctx, tx, batchID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, events...)

	s.log.Info().Str("batch", batch.Reference).Msg("batch approved")
	return batch, nil
}

// ApproveTx is the tx-scoped approval step the vote registry fires when the
// approval tally reaches threshold.
func (s *SettlementServiceImpl) ApproveTx(ctx context.Context, tx pgx.Tx, batchID uuid.UUID, now time.Time) (*domain.Batch, []*domain.Event, error) {
	batch, err := s.batchRepo.GetForUpdate(ctx, tx, batchID)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, nil, apperror.ErrNotFound("batch")
	}
	if batch.Status != domain.BatchStatusPending {
		return nil, nil, apperror.ErrInvalidBatchStatus(string(batch.Status))
	}
	if now.After(batch.CreatedAt.Add(approvalWindow)) {
		return nil, nil, apperror.ErrApprovalWindowExpired()
	}

	if err := batch.Transition(domain.BatchStatusProcessing, now); err != nil {
		return nil, nil, err
	}
	if err := s.batchRepo.UpdateState(ctx, tx, batch); err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventBatchApproved, "batch", batch.ID.String(), nil, batchSnapshot(batch), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	return batch, []*domain.Event{ev}, nil
}

// Claim pays the caller's payment line out of the owner's locked collateral.
// The last claim completes the batch.
func (s *SettlementServiceImpl) Claim(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error) {
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch, err := s.batchRepo.GetForUpdate(ctx, tx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, apperror.ErrNotFound("batch")
	}
	if batch.Status != domain.BatchStatusProcessing {
		return nil, apperror.ErrInvalidBatchStatus(string(batch.Status))
	}

	idx := batch.FindPayment(actor.ID)
	if idx < 0 {
		return nil, apperror.ErrNoPaymentForPayee()
	}
	if batch.Payments[idx].Claimed {
		return nil, apperror.ErrAlreadyClaimed()
	}

	now := time.Now().UTC()
	amount := batch.Payments[idx].Amount
	_, payEv, err := s.collateral.TransferFromLockedTx(ctx, tx, batch.Owner, actor.ID, amount, batch.Reference)
	if err != nil {
		return nil, err
	}

	batch.MarkClaimed(idx, now)
	if err := s.batchRepo.MarkClaimed(ctx, tx, batch.ID, actor.ID, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	events := make([]*domain.Event, 0, 2)
	payload := batchSnapshot(batch)
	payload.Payee = &actor.ID
	payload.Amount = amount
	events = append(events, domain.NewEvent(domain.EventBatchClaimed, "batch", batch.ID.String(), &actor.ID, payload, now))

	if batch.FullyClaimed() {
		if err := batch.Transition(domain.BatchStatusCompleted, now); err != nil {
			return nil, err
		}
		events = append(events, domain.NewEvent(domain.EventBatchCompleted, "batch", batch.ID.String(), nil, batchSnapshot(batch), now))
	}
	if err := s.batchRepo.UpdateState(ctx, tx, batch); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := s.recorder.Append(ctx, tx, events...); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, append([]*domain.Event{payEv}, events...)...)

	s.log.Info().
		Str("batch", batch.Reference).
		Str("payee", actor.ID.String()).
		Int64("amount", amount).
		Bool("completed", batch.Status == domain.BatchStatusCompleted).
		Msg("payment claimed")

	return batch, nil
}

// Cancel lets the owner withdraw a batch no oracle has acted on yet. The
// full locked total returns to available.
func (s *SettlementServiceImpl) Cancel(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error) {
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch, err := s.batchRepo.GetForUpdate(ctx, tx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, apperror.ErrNotFound("batch")
	}
	if batch.Owner != actor.ID {
		return nil, apperror.ErrMissingRole("batch-owner")
	}
	if batch.Status != domain.BatchStatusPending {
		return nil, apperror.ErrInvalidBatchStatus(string(batch.Status))
	}

	now := time.Now().UTC()
	if err := batch.Transition(domain.BatchStatusFailed, now); err != nil {
		return nil, err
	}
	_, unlockEv, err := s.collateral.UnlockTx(ctx, tx, batch.Owner, batch.TotalAmount, batch.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.batchRepo.UpdateState(ctx, tx, batch); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	payload := batchSnapshot(batch)
	payload.Reason = "cancelled by owner"
	ev := domain.NewEvent(domain.EventBatchFailed, "batch", batch.ID.String(), &actor.ID, payload, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, unlockEv, ev)

	s.log.Info().Str("batch", batch.Reference).Msg("batch cancelled")
	return batch, nil
}

// Fail marks a batch Failed and returns the unclaimed remainder to the
// owner. Oracle-caller or fraud-caller role.
func (s *SettlementServiceImpl) Fail(ctx context.Context, actor domain.Actor, batchID uuid.UUID, reason string) (*domain.Batch, error) {
	if !actor.HasRole(domain.RoleOracleCaller) && !actor.HasRole(domain.RoleFraudCaller) {
		return nil, apperror.ErrMissingRole(string(domain.RoleOracleCaller))
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch, events, err := s.FailTx(ctx, tx, batchID, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, events...)

	s.log.Warn().Str("batch", batch.Reference).Str("reason", reason).Msg("batch failed")
	return batch, nil
}

// FailTx is the tx-scoped failure step shared by Fail and the vote registry's
// rejection threshold. Paid claims stay paid; only the unclaimed remainder
// unlocks.
func (s *SettlementServiceImpl) FailTx(ctx context.Context, tx pgx.Tx, batchID uuid.UUID, reason string, now time.Time) (*domain.Batch, []*domain.Event, error) {
	batch, err := s.batchRepo.GetForUpdate(ctx, tx, batchID)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, nil, apperror.ErrNotFound("batch")
	}

	if err := batch.Transition(domain.BatchStatusFailed, now); err != nil {
		return nil, nil, err
	}
	events := make([]*domain.Event, 0, 2)
	if remainder := batch.UnclaimedRemainder(); remainder > 0 {
		_, unlockEv, err := s.collateral.UnlockTx(ctx, tx, batch.Owner, remainder, batch.Reference)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, unlockEv)
	}
	if err := s.batchRepo.UpdateState(ctx, tx, batch); err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	payload := batchSnapshot(batch)
	payload.Reason = reason
	ev := domain.NewEvent(domain.EventBatchFailed, "batch", batch.ID.String(), nil, payload, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}
	events = append(events, ev)

	return batch, events, nil
}

// Timeout moves an expired non-terminal batch to TimedOut and returns the
// unclaimed remainder. Callable by anyone; the window itself is the guard.
func (s *SettlementServiceImpl) Timeout(ctx context.Context, actor domain.Actor, batchID uuid.UUID) (*domain.Batch, error) {
	window, err := paramDuration(ctx, s.params, domain.ParamSettlementTimeoutSecs)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch, err := s.batchRepo.GetForUpdate(ctx, tx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, apperror.ErrNotFound("batch")
	}
	if batch.Status.IsTerminal() {
		return nil, apperror.ErrInvalidBatchStatus(string(batch.Status))
	}

	now := time.Now().UTC()
	if now.Before(batch.TimeoutReference().Add(window)) {
		return nil, apperror.ErrTimeoutNotReached()
	}

	if err := batch.Transition(domain.BatchStatusTimedOut, now); err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, 2)
	if remainder := batch.UnclaimedRemainder(); remainder > 0 {
		_, unlockEv, err := s.collateral.UnlockTx(ctx, tx, batch.Owner, remainder, batch.Reference)
		if err != nil {
			return nil, err
		}
		events = append(events, unlockEv)
	}
	if err := s.batchRepo.UpdateState(ctx, tx, batch); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventBatchTimedOut, "batch", batch.ID.String(), &actor.ID, batchSnapshot(batch), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	events = append(events, ev)

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, events...)

	s.log.Warn().Str("batch", batch.Reference).Msg("batch timed out")
	return batch, nil
}

// GetBatch returns a batch by id.
func (s *SettlementServiceImpl) GetBatch(ctx context.Context, batchID uuid.UUID) (*domain.Batch, error) {
	batch, err := s.batchRepo.Get(ctx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, apperror.ErrNotFound("batch")
	}
	return batch, nil
}

// ListBatches returns the owner's most recent batches.
func (s *SettlementServiceImpl) ListBatches(ctx context.Context, owner uuid.UUID, limit int) ([]domain.Batch, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	batches, err := s.batchRepo.ListByOwner(ctx, owner, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return batches, nil
}
