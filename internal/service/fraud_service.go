package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/config"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// FraudServiceImpl implements ports.FraudService: blacklist check first,
// then hourly and daily velocity windows in Redis. Whitelisted principals
// skip the windows entirely. The window bump happens before the comparison,
// so two racing calls cannot both slip under the limit.
type FraudServiceImpl struct {
	limitRepo ports.FraudLimitRepository
	velocity  ports.VelocityStore
	defaults  config.FraudConfig
	log       zerolog.Logger
}

// NewFraudService creates a new FraudServiceImpl.
func NewFraudService(limitRepo ports.FraudLimitRepository, velocity ports.VelocityStore, defaults config.FraudConfig, log zerolog.Logger) *FraudServiceImpl {
	return &FraudServiceImpl{
		limitRepo: limitRepo,
		velocity:  velocity,
		defaults:  defaults,
		log:       log,
	}
}

func pick(override, fallback int64) int64 {
	if override > 0 {
		return override
	}
	return fallback
}

// ValidateTransaction admits or rejects a money-moving action for the
// principal. Redis unavailability fails open with a warning; the ledger's
// own balance checks still bound the damage.
func (s *FraudServiceImpl) ValidateTransaction(ctx context.Context, principal uuid.UUID, amount int64) error {
	limit, err := s.limitRepo.Get(ctx, principal)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if limit != nil {
		switch limit.ListStatus {
		case domain.ListStatusBlacklisted:
			return apperror.ErrPrincipalBlacklisted()
		case domain.ListStatusWhitelisted:
			return nil
		}
	}

	hourlyCount := s.defaults.HourlyMaxCount
	hourlyAmount := s.defaults.HourlyMaxAmount
	dailyCount := s.defaults.DailyMaxCount
	dailyAmount := s.defaults.DailyMaxAmount
	if limit != nil {
		hourlyCount = pick(limit.HourlyMaxCount, hourlyCount)
		hourlyAmount = pick(limit.HourlyMaxAmount, hourlyAmount)
		dailyCount = pick(limit.DailyMaxCount, dailyCount)
		dailyAmount = pick(limit.DailyMaxAmount, dailyAmount)
	}

	key := principal.String()
	hourly, err := s.velocity.Bump(ctx, key, "hourly", time.Hour, amount)
	if err != nil {
		s.log.Warn().Err(err).Str("principal", key).Msg("velocity store unavailable, admitting")
		return nil
	}
	if hourly.Count > hourlyCount || hourly.Amount > hourlyAmount {
		return apperror.ErrVelocityLimitExceeded("hourly")
	}

	daily, err := s.velocity.Bump(ctx, key, "daily", 24*time.Hour, amount)
	if err != nil {
		s.log.Warn().Err(err).Str("principal", key).Msg("velocity store unavailable, admitting")
		return nil
	}
	if daily.Count > dailyCount || daily.Amount > dailyAmount {
		return apperror.ErrVelocityLimitExceeded("daily")
	}

	return nil
}

// SetLimit upserts a principal's fraud override. Fraud-caller role.
func (s *FraudServiceImpl) SetLimit(ctx context.Context, actor domain.Actor, limit *domain.FraudLimit) error {
	if !actor.HasRole(domain.RoleFraudCaller) {
		return apperror.ErrMissingRole(string(domain.RoleFraudCaller))
	}
	if limit == nil || limit.Principal == uuid.Nil {
		return apperror.Validation("fraud limit requires a principal")
	}
	switch limit.ListStatus {
	case domain.ListStatusNone, domain.ListStatusBlacklisted, domain.ListStatusWhitelisted:
	default:
		return apperror.Validation("unknown list status")
	}

	limit.UpdatedAt = time.Now().UTC()
	if err := s.limitRepo.Upsert(ctx, limit); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("principal", limit.Principal.String()).
		Str("status", string(limit.ListStatus)).
		Msg("fraud limit updated")

	return nil
}

// GetLimit returns the principal's override, or an all-defaults record.
func (s *FraudServiceImpl) GetLimit(ctx context.Context, principal uuid.UUID) (*domain.FraudLimit, error) {
	limit, err := s.limitRepo.Get(ctx, principal)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if limit == nil {
		return &domain.FraudLimit{Principal: principal, ListStatus: domain.ListStatusNone}, nil
	}
	return limit, nil
}
