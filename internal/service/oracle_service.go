package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// OracleServiceImpl implements ports.OracleService: staked membership and
// per-batch threshold voting. When a tally reaches threshold the settlement
// executor fires inside the vote's own transaction, so a settlement failure
// rolls the vote back with it.
type OracleServiceImpl struct {
	oracleRepo ports.OracleRepository
	voteRepo   ports.VoteRepository
	batchRepo  ports.BatchRepository
	executor   ports.SettlementExecutor
	params     ports.ParamRepository
	recorder   ports.EventRecorder
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewOracleService creates a new OracleServiceImpl.
func NewOracleService(
	oracleRepo ports.OracleRepository,
	voteRepo ports.VoteRepository,
	batchRepo ports.BatchRepository,
	executor ports.SettlementExecutor,
	params ports.ParamRepository,
	recorder ports.EventRecorder,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *OracleServiceImpl {
	return &OracleServiceImpl{
		oracleRepo: oracleRepo,
		voteRepo:   voteRepo,
		batchRepo:  batchRepo,
		executor:   executor,
		params:     params,
		recorder:   recorder,
		transactor: transactor,
		log:        log,
	}
}

type oraclePayload struct {
	Oracle     uuid.UUID `json:"oracle"`
	Stake      int64     `json:"stake"`
	Active     bool      `json:"active"`
	SlashCount int64     `json:"slash_count,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// Register stakes the caller into the oracle set. Re-registering after a
// deregistration reuses the record; a live registration is rejected.
func (s *OracleServiceImpl) Register(ctx context.Context, actor domain.Actor, stake int64) (*domain.OracleRecord, error) {
	if actor.Kind != domain.AccountKindOracle {
		return nil, apperror.ErrMissingRole("oracle")
	}
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}
	minStake, err := paramValue(ctx, s.params, domain.ParamMinimumStake)
	if err != nil {
		return nil, err
	}
	if stake < minStake {
		return nil, apperror.ErrStakeBelowMinimum(minStake)
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	rec, err := s.oracleRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if rec == nil {
		rec = &domain.OracleRecord{
			Oracle:         actor.ID,
			IsRegistered:   true,
			IsActive:       true,
			Stake:          stake,
			RegisteredAt:   now,
			LastActivityAt: now,
		}
		if err := s.oracleRepo.Create(ctx, tx, rec); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	} else {
		if rec.IsRegistered {
			return nil, apperror.ErrOracleAlreadyRegistered()
		}
		rec.IsRegistered = true
		rec.IsActive = true
		rec.Stake = stake
		rec.RegisteredAt = now
		rec.LastActivityAt = now
		if err := s.oracleRepo.Update(ctx, tx, rec); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}

	ev := domain.NewEvent(domain.EventOracleRegistered, "oracle", actor.ID.String(), &actor.ID,
		oraclePayload{Oracle: actor.ID, Stake: stake, Active: true}, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().Str("oracle", actor.ID.String()).Int64("stake", stake).Msg("oracle registered")
	return rec, nil
}

// Deregister removes the caller from the active set and releases its stake.
// The record survives with IsRegistered false and stake zero, so its history
// and slash count persist.
func (s *OracleServiceImpl) Deregister(ctx context.Context, actor domain.Actor) (*domain.OracleRecord, error) {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec, err := s.oracleRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil || !rec.IsRegistered {
		return nil, apperror.ErrNotFound("oracle")
	}

	now := time.Now().UTC()
	released := rec.Stake
	rec.Stake = 0
	rec.IsRegistered = false
	rec.IsActive = false
	rec.LastActivityAt = now
	if err := s.oracleRepo.Update(ctx, tx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventOracleDeregistered, "oracle", actor.ID.String(), &actor.ID,
		oraclePayload{Oracle: actor.ID, Stake: released}, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().Str("oracle", actor.ID.String()).Msg("oracle deregistered")
	return rec, nil
}

// Vote records one oracle's vote on a batch. Lock order is oracle row then
// vote record; the batch row is only locked if a threshold fires, through
// the executor. Duplicate votes and closed rounds are rejected. Once a
// round's decision has been applied it is final.
func (s *OracleServiceImpl) Vote(ctx context.Context, actor domain.Actor, batchID uuid.UUID, kind domain.VoteKind, reason string) (*domain.BatchVoteRecord, error) {
	if err := ensureNotPaused(ctx, s.params); err != nil {
		return nil, err
	}
	threshold, err := paramValue(ctx, s.params, domain.ParamApprovalThreshold)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec, err := s.oracleRepo.GetForUpdate(ctx, tx, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil || !rec.CanVote() {
		return nil, apperror.ErrOracleNotActive()
	}

	batch, err := s.batchRepo.Get(ctx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if batch == nil {
		return nil, apperror.ErrNotFound("batch")
	}

	votes, err := s.voteRepo.GetOrCreateForUpdate(ctx, tx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	// A settled round stays settled. Checked before the batch status so a
	// post-decision vote reports the round closure, not the status the
	// decision happened to leave behind.
	if votes.Processed {
		return nil, apperror.ErrVoteRoundClosed()
	}
	if batch.Status != domain.BatchStatusPending {
		return nil, apperror.ErrInvalidBatchStatus(string(batch.Status))
	}

	voted, err := s.voteRepo.HasVoted(ctx, tx, batchID, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if voted {
		return nil, apperror.ErrDuplicateVote()
	}

	now := time.Now().UTC()
	cast := &domain.VoteCast{BatchID: batchID, Oracle: actor.ID, Kind: kind, Reason: reason, CastAt: now}
	if err := s.voteRepo.RecordCast(ctx, tx, cast); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	switch kind {
	case domain.VoteApprove:
		votes.ApprovalCount++
		rec.ApprovalsCast++
	case domain.VoteReject:
		votes.RejectionCount++
		rec.RejectionsCast++
	default:
		return nil, apperror.Validation("vote must be APPROVE or REJECT")
	}
	rec.LastActivityAt = now
	if err := s.oracleRepo.Update(ctx, tx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	voteEv := domain.NewEvent(domain.EventVoteCast, "batch", batchID.String(), &actor.ID, cast, now)
	if err := s.recorder.Append(ctx, tx, voteEv); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	events := []*domain.Event{voteEv}

	// The executor appends its own events inside this transaction; they
	// still need the post-commit fan-out, so they join the flush list here.
	if votes.ApprovalCount >= threshold {
		votes.Processed = true
		_, settled, err := s.executor.ApproveTx(ctx, tx, batchID, now)
		if err != nil {
			return nil, err
		}
		events = append(events, settled...)
	} else if votes.RejectionCount >= threshold {
		votes.Processed = true
		_, settled, err := s.executor.FailTx(ctx, tx, batchID, "rejected by oracle vote", now)
		if err != nil {
			return nil, err
		}
		events = append(events, settled...)
	}

	if err := s.voteRepo.Update(ctx, tx, votes); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, events...)

	s.log.Info().
		Str("batch", batchID.String()).
		Str("oracle", actor.ID.String()).
		Str("vote", string(kind)).
		Bool("decided", votes.Processed).
		Msg("vote cast")

	return votes, nil
}

// SlashOracle forfeits the slash amount from an oracle's stake. A stake
// that cannot cover the full amount is rejected, never partially drained.
// Falling below minimum stake deactivates the oracle. Slasher role; allowed
// while paused.
func (s *OracleServiceImpl) SlashOracle(ctx context.Context, actor domain.Actor, oracle uuid.UUID, reason string) (*domain.OracleRecord, error) {
	if !actor.HasRole(domain.RoleSlasher) {
		return nil, apperror.ErrMissingRole(string(domain.RoleSlasher))
	}
	slashAmount, err := paramValue(ctx, s.params, domain.ParamSlashAmount)
	if err != nil {
		return nil, err
	}
	minStake, err := paramValue(ctx, s.params, domain.ParamMinimumStake)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec, err := s.oracleRepo.GetForUpdate(ctx, tx, oracle)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil || !rec.IsRegistered {
		return nil, apperror.ErrNotFound("oracle")
	}

	now := time.Now().UTC()
	if rec.Stake < slashAmount {
		return nil, apperror.ErrInsufficientStake(slashAmount)
	}
	rec.Stake -= slashAmount
	rec.SlashCount++
	rec.LastActivityAt = now
	if rec.Stake < minStake {
		rec.IsActive = false
	}
	if err := s.oracleRepo.Update(ctx, tx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventOracleSlashed, "oracle", oracle.String(), &actor.ID,
		oraclePayload{Oracle: oracle, Stake: rec.Stake, Active: rec.IsActive, SlashCount: rec.SlashCount, Reason: reason}, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Warn().
		Str("oracle", oracle.String()).
		Int64("slashed", slashAmount).
		Int64("stake", rec.Stake).
		Bool("active", rec.IsActive).
		Msg("oracle slashed")

	return rec, nil
}

// Activate returns a deactivated oracle to the voting set. Admin-only; the
// oracle must still meet the minimum stake.
func (s *OracleServiceImpl) Activate(ctx context.Context, actor domain.Actor, oracle uuid.UUID) (*domain.OracleRecord, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}
	minStake, err := paramValue(ctx, s.params, domain.ParamMinimumStake)
	if err != nil {
		return nil, err
	}
	return s.setActive(ctx, actor, oracle, true, minStake)
}

// Deactivate removes an oracle from the voting set without deregistering it.
func (s *OracleServiceImpl) Deactivate(ctx context.Context, actor domain.Actor, oracle uuid.UUID) (*domain.OracleRecord, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}
	return s.setActive(ctx, actor, oracle, false, 0)
}

func (s *OracleServiceImpl) setActive(ctx context.Context, actor domain.Actor, oracle uuid.UUID, active bool, minStake int64) (*domain.OracleRecord, error) {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec, err := s.oracleRepo.GetForUpdate(ctx, tx, oracle)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil || !rec.IsRegistered {
		return nil, apperror.ErrNotFound("oracle")
	}
	if active && rec.Stake < minStake {
		return nil, apperror.ErrStakeBelowMinimum(minStake)
	}

	now := time.Now().UTC()
	rec.IsActive = active
	rec.LastActivityAt = now
	if err := s.oracleRepo.Update(ctx, tx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	evType := domain.EventOracleActivated
	if !active {
		evType = domain.EventOracleDeactivated
	}
	ev := domain.NewEvent(evType, "oracle", oracle.String(), &actor.ID,
		oraclePayload{Oracle: oracle, Stake: rec.Stake, Active: active}, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	return rec, nil
}

// SetApprovalThreshold changes the votes-to-decide count. Admin-only; the
// threshold can never exceed the active oracle count, which would deadlock
// every future round.
func (s *OracleServiceImpl) SetApprovalThreshold(ctx context.Context, actor domain.Actor, n int64) error {
	if !actor.HasRole(domain.RoleAdmin) {
		return apperror.ErrMissingRole(string(domain.RoleAdmin))
	}
	if n < 1 {
		return apperror.ErrInvalidThreshold()
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	active, err := s.oracleRepo.CountActive(ctx, tx)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if n > active {
		return apperror.ErrInvalidThreshold()
	}

	if err := s.params.Set(ctx, tx, domain.ParamApprovalThreshold, n); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	now := time.Now().UTC()
	ev := domain.NewEvent(domain.EventThresholdUpdated, "oracle", "threshold", &actor.ID,
		map[string]int64{"threshold": n, "active_oracles": active}, now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().Int64("threshold", n).Msg("approval threshold updated")
	return nil
}

// GetOracle returns an oracle record.
func (s *OracleServiceImpl) GetOracle(ctx context.Context, oracle uuid.UUID) (*domain.OracleRecord, error) {
	rec, err := s.oracleRepo.Get(ctx, oracle)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("oracle")
	}
	return rec, nil
}

// GetVotes returns the tally for a batch, empty if nobody has voted.
func (s *OracleServiceImpl) GetVotes(ctx context.Context, batchID uuid.UUID) (*domain.BatchVoteRecord, error) {
	votes, err := s.voteRepo.Get(ctx, batchID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if votes == nil {
		return &domain.BatchVoteRecord{BatchID: batchID}, nil
	}
	return votes, nil
}
