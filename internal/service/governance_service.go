package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/config"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// GovernanceServiceImpl implements ports.GovernanceService: M-of-N
// timelocked proposals administering every runtime parameter, role grant
// and the pause switch. Admin role throughout.
type GovernanceServiceImpl struct {
	propRepo   ports.ProposalRepository
	roleRepo   ports.RoleRepository
	oracleRepo ports.OracleRepository
	params     ports.ParamRepository
	recorder   ports.EventRecorder
	transactor ports.DBTransactor
	cfg        config.GovernanceConfig
	log        zerolog.Logger
}

// NewGovernanceService creates a new GovernanceServiceImpl.
func NewGovernanceService(
	propRepo ports.ProposalRepository,
	roleRepo ports.RoleRepository,
	oracleRepo ports.OracleRepository,
	params ports.ParamRepository,
	recorder ports.EventRecorder,
	transactor ports.DBTransactor,
	cfg config.GovernanceConfig,
	log zerolog.Logger,
) *GovernanceServiceImpl {
	return &GovernanceServiceImpl{
		propRepo:   propRepo,
		roleRepo:   roleRepo,
		oracleRepo: oracleRepo,
		params:     params,
		recorder:   recorder,
		transactor: transactor,
		cfg:        cfg,
		log:        log,
	}
}

type proposalPayload struct {
	ProposalID uuid.UUID `json:"proposal_id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Approvals  int64     `json:"approvals"`
	Threshold  int64     `json:"threshold"`
}

func proposalSnapshot(p *domain.Proposal) proposalPayload {
	return proposalPayload{
		ProposalID: p.ID,
		Kind:       string(p.Kind),
		Status:     string(p.Status),
		Approvals:  p.ApprovalCount,
		Threshold:  p.Threshold,
	}
}

// validatePayload rejects malformed proposals at creation time rather than
// at execution, when fixing them would cost a full proposal cycle.
func (s *GovernanceServiceImpl) validatePayload(kind domain.ProposalKind, payload json.RawMessage) error {
	switch kind {
	case domain.ProposalSetParam:
		var p domain.SetParamPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return apperror.Validation("malformed SET_PARAM payload")
		}
		if !domain.ValidParamValue(p.Key, p.Value) {
			return apperror.Validation(fmt.Sprintf("parameter %q rejects value %d", p.Key, p.Value))
		}
	case domain.ProposalGrantRole, domain.ProposalRevokeRole:
		var p domain.RolePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return apperror.Validation("malformed role payload")
		}
		if p.AccountID == uuid.Nil || p.Role == "" {
			return apperror.Validation("role payload requires account_id and role")
		}
	case domain.ProposalPause, domain.ProposalUnpause:
		// no payload
	default:
		return apperror.Validation("unknown proposal kind")
	}
	return nil
}

// Propose creates a Pending proposal with its timelock ETA and expiry set.
// The proposer's approval is counted implicitly.
func (s *GovernanceServiceImpl) Propose(ctx context.Context, actor domain.Actor, kind domain.ProposalKind, payload json.RawMessage, expedited bool) (*domain.Proposal, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}
	if err := s.validatePayload(kind, payload); err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	delay := s.cfg.StandardDelay
	if expedited {
		delay = s.cfg.ExpeditedDelay
	}
	prop := &domain.Proposal{
		ID:            uuid.New(),
		Kind:          kind,
		Payload:       payload,
		Proposer:      actor.ID,
		Threshold:     s.cfg.Threshold,
		ApprovalCount: 1,
		Status:        domain.ProposalStatusPending,
		Expedited:     expedited,
		CreatedAt:     now,
		ETA:           now.Add(delay),
		ExpiresAt:     now.Add(s.cfg.ProposalLifetime),
	}
	if err := s.propRepo.Create(ctx, tx, prop); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := s.propRepo.RecordApproval(ctx, tx, prop.ID, actor.ID, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventProposalCreated, "proposal", prop.ID.String(), &actor.ID, proposalSnapshot(prop), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().
		Str("proposal", prop.ID.String()).
		Str("kind", string(kind)).
		Bool("expedited", expedited).
		Time("eta", prop.ETA).
		Msg("proposal created")

	return prop, nil
}

// ApproveProposal adds one admin approval. One approval per signer; an
// expired proposal is marked Expired on the spot.
func (s *GovernanceServiceImpl) ApproveProposal(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Proposal, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	prop, err := s.propRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if prop == nil {
		return nil, apperror.ErrNotFound("proposal")
	}
	if prop.Status != domain.ProposalStatusPending {
		return nil, apperror.ErrProposalNotPending(string(prop.Status))
	}

	now := time.Now().UTC()
	if prop.Expired(now) {
		prop.Status = domain.ProposalStatusExpired
		if err := s.propRepo.Update(ctx, tx, prop); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		return nil, apperror.ErrProposalExpired()
	}

	approved, err := s.propRepo.HasApproved(ctx, tx, id, actor.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if approved {
		return nil, apperror.ErrDuplicateApproval()
	}

	prop.ApprovalCount++
	if err := s.propRepo.RecordApproval(ctx, tx, id, actor.ID, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := s.propRepo.Update(ctx, tx, prop); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventProposalApproved, "proposal", id.String(), &actor.ID, proposalSnapshot(prop), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	return prop, nil
}

// ExecuteProposal applies an approved proposal once its timelock has
// elapsed. The action runs in the same transaction as the status flip.
func (s *GovernanceServiceImpl) ExecuteProposal(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Proposal, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	prop, err := s.propRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if prop == nil {
		return nil, apperror.ErrNotFound("proposal")
	}
	if prop.Status != domain.ProposalStatusPending {
		return nil, apperror.ErrProposalNotPending(string(prop.Status))
	}

	now := time.Now().UTC()
	if prop.Expired(now) {
		prop.Status = domain.ProposalStatusExpired
		if err := s.propRepo.Update(ctx, tx, prop); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}
		return nil, apperror.ErrProposalExpired()
	}
	if prop.ApprovalCount < prop.Threshold {
		return nil, apperror.ErrInsufficientApprovals()
	}
	if now.Before(prop.ETA) {
		return nil, apperror.ErrTimelockNotElapsed()
	}

	events, err := s.apply(ctx, tx, actor, prop, now)
	if err != nil {
		return nil, err
	}

	prop.Status = domain.ProposalStatusExecuted
	prop.ExecutedAt = &now
	if err := s.propRepo.Update(ctx, tx, prop); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	events = append(events, domain.NewEvent(domain.EventProposalExecuted, "proposal", id.String(), &actor.ID, proposalSnapshot(prop), now))
	if err := s.recorder.Append(ctx, tx, events...); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, events...)

	s.log.Info().
		Str("proposal", id.String()).
		Str("kind", string(prop.Kind)).
		Msg("proposal executed")

	return prop, nil
}

// apply performs the proposal's administrative action inside tx.
func (s *GovernanceServiceImpl) apply(ctx context.Context, tx pgx.Tx, actor domain.Actor, prop *domain.Proposal, now time.Time) ([]*domain.Event, error) {
	switch prop.Kind {
	case domain.ProposalSetParam:
		var p domain.SetParamPayload
		if err := json.Unmarshal(prop.Payload, &p); err != nil {
			return nil, apperror.Validation("malformed SET_PARAM payload")
		}
		if !domain.ValidParamValue(p.Key, p.Value) {
			return nil, apperror.Validation(fmt.Sprintf("parameter %q rejects value %d", p.Key, p.Value))
		}
		// Re-check against the oracle set at execution time, not proposal
		// time: oracles may have deregistered during the timelock.
		if p.Key == domain.ParamApprovalThreshold {
			active, err := s.oracleRepo.CountActive(ctx, tx)
			if err != nil {
				return nil, apperror.ErrDatabaseError(err)
			}
			if p.Value > active {
				return nil, apperror.ErrInvalidThreshold()
			}
		}
		if err := s.params.Set(ctx, tx, p.Key, p.Value); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		return []*domain.Event{
			domain.NewEvent(domain.EventParamUpdated, "proposal", prop.ID.String(), &actor.ID, p, now),
		}, nil

	case domain.ProposalGrantRole:
		var p domain.RolePayload
		if err := json.Unmarshal(prop.Payload, &p); err != nil {
			return nil, apperror.Validation("malformed role payload")
		}
		if err := s.roleRepo.Grant(ctx, tx, p.AccountID, p.Role, now); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		return []*domain.Event{
			domain.NewEvent(domain.EventRoleGranted, "proposal", prop.ID.String(), &actor.ID, p, now),
		}, nil

	case domain.ProposalRevokeRole:
		var p domain.RolePayload
		if err := json.Unmarshal(prop.Payload, &p); err != nil {
			return nil, apperror.Validation("malformed role payload")
		}
		if err := s.roleRepo.Revoke(ctx, tx, p.AccountID, p.Role); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		return []*domain.Event{
			domain.NewEvent(domain.EventRoleRevoked, "proposal", prop.ID.String(), &actor.ID, p, now),
		}, nil

	case domain.ProposalPause:
		if err := s.params.Set(ctx, tx, domain.ParamPaused, 1); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		return []*domain.Event{
			domain.NewEvent(domain.EventPaused, "proposal", prop.ID.String(), &actor.ID, nil, now),
		}, nil

	case domain.ProposalUnpause:
		if err := s.params.Set(ctx, tx, domain.ParamPaused, 0); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		return []*domain.Event{
			domain.NewEvent(domain.EventUnpaused, "proposal", prop.ID.String(), &actor.ID, nil, now),
		}, nil

	default:
		return nil, apperror.Validation("unknown proposal kind")
	}
}

// CancelProposal withdraws a Pending proposal. Proposer or any admin.
func (s *GovernanceServiceImpl) CancelProposal(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Proposal, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, apperror.ErrMissingRole(string(domain.RoleAdmin))
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	prop, err := s.propRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if prop == nil {
		return nil, apperror.ErrNotFound("proposal")
	}
	if prop.Status != domain.ProposalStatusPending {
		return nil, apperror.ErrProposalNotPending(string(prop.Status))
	}

	now := time.Now().UTC()
	prop.Status = domain.ProposalStatusCancelled
	if err := s.propRepo.Update(ctx, tx, prop); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	ev := domain.NewEvent(domain.EventProposalCancelled, "proposal", id.String(), &actor.ID, proposalSnapshot(prop), now)
	if err := s.recorder.Append(ctx, tx, ev); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.recorder.Flush(ctx, ev)

	s.log.Info().Str("proposal", id.String()).Msg("proposal cancelled")
	return prop, nil
}

// GetProposal returns a proposal by id.
func (s *GovernanceServiceImpl) GetProposal(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	prop, err := s.propRepo.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if prop == nil {
		return nil, apperror.ErrNotFound("proposal")
	}
	return prop, nil
}
