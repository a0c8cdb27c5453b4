package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samuelarogbonlo/tata-pay/config"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports/mocks"
)

type fraudTestDeps struct {
	svc       *FraudServiceImpl
	limitRepo *mocks.MockFraudLimitRepository
	velocity  *mocks.MockVelocityStore
	ctrl      *gomock.Controller
}

func setupFraudService(t *testing.T) *fraudTestDeps {
	ctrl := gomock.NewController(t)
	d := &fraudTestDeps{
		limitRepo: mocks.NewMockFraudLimitRepository(ctrl),
		velocity:  mocks.NewMockVelocityStore(ctrl),
		ctrl:      ctrl,
	}
	defaults := config.FraudConfig{
		HourlyMaxCount:  10,
		HourlyMaxAmount: 100_000_000,
		DailyMaxCount:   50,
		DailyMaxAmount:  500_000_000,
	}
	d.svc = NewFraudService(d.limitRepo, d.velocity, defaults, zerolog.Nop())
	return d
}

func TestFraudService_ValidateTransaction_Blacklisted(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()
	d.limitRepo.EXPECT().Get(ctx, principal).Return(&domain.FraudLimit{
		Principal: principal, ListStatus: domain.ListStatusBlacklisted,
	}, nil)

	err := d.svc.ValidateTransaction(ctx, principal, 1_000_000)
	assertCode(t, err, "FRD_001")
}

func TestFraudService_ValidateTransaction_WhitelistSkipsWindows(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()
	d.limitRepo.EXPECT().Get(ctx, principal).Return(&domain.FraudLimit{
		Principal: principal, ListStatus: domain.ListStatusWhitelisted,
	}, nil)
	// No Bump expected.

	require.NoError(t, d.svc.ValidateTransaction(ctx, principal, 999_000_000_000))
}

func TestFraudService_ValidateTransaction_WithinLimits(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()
	key := principal.String()

	d.limitRepo.EXPECT().Get(ctx, principal).Return(nil, nil)
	d.velocity.EXPECT().Bump(ctx, key, "hourly", time.Hour, int64(10_000_000)).
		Return(&ports.VelocityResult{Count: 3, Amount: 30_000_000}, nil)
	d.velocity.EXPECT().Bump(ctx, key, "daily", 24*time.Hour, int64(10_000_000)).
		Return(&ports.VelocityResult{Count: 8, Amount: 90_000_000}, nil)

	require.NoError(t, d.svc.ValidateTransaction(ctx, principal, 10_000_000))
}

func TestFraudService_ValidateTransaction_HourlyCountExceeded(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()

	d.limitRepo.EXPECT().Get(ctx, principal).Return(nil, nil)
	d.velocity.EXPECT().Bump(ctx, principal.String(), "hourly", time.Hour, int64(1_000_000)).
		Return(&ports.VelocityResult{Count: 11, Amount: 11_000_000}, nil)

	err := d.svc.ValidateTransaction(ctx, principal, 1_000_000)
	assertCode(t, err, "FRD_002")
}

func TestFraudService_ValidateTransaction_DailyAmountExceeded(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()
	key := principal.String()

	d.limitRepo.EXPECT().Get(ctx, principal).Return(nil, nil)
	d.velocity.EXPECT().Bump(ctx, key, "hourly", time.Hour, int64(90_000_000)).
		Return(&ports.VelocityResult{Count: 1, Amount: 90_000_000}, nil)
	d.velocity.EXPECT().Bump(ctx, key, "daily", 24*time.Hour, int64(90_000_000)).
		Return(&ports.VelocityResult{Count: 20, Amount: 540_000_000}, nil)

	err := d.svc.ValidateTransaction(ctx, principal, 90_000_000)
	assertCode(t, err, "FRD_002")
}

func TestFraudService_ValidateTransaction_PerPrincipalOverride(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()
	key := principal.String()

	// Override raises the hourly count ceiling; zero fields keep defaults.
	d.limitRepo.EXPECT().Get(ctx, principal).Return(&domain.FraudLimit{
		Principal: principal, ListStatus: domain.ListStatusNone, HourlyMaxCount: 100,
	}, nil)
	d.velocity.EXPECT().Bump(ctx, key, "hourly", time.Hour, int64(1_000_000)).
		Return(&ports.VelocityResult{Count: 50, Amount: 50_000_000}, nil)
	d.velocity.EXPECT().Bump(ctx, key, "daily", 24*time.Hour, int64(1_000_000)).
		Return(&ports.VelocityResult{Count: 50, Amount: 50_000_000}, nil)

	require.NoError(t, d.svc.ValidateTransaction(ctx, principal, 1_000_000))
}

// A dead Redis must not freeze settlements.
func TestFraudService_ValidateTransaction_StoreDownFailsOpen(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	principal := uuid.New()

	d.limitRepo.EXPECT().Get(ctx, principal).Return(nil, nil)
	d.velocity.EXPECT().Bump(ctx, principal.String(), "hourly", time.Hour, int64(1_000_000)).
		Return(nil, errors.New("connection refused"))

	require.NoError(t, d.svc.ValidateTransaction(ctx, principal, 1_000_000))
}

func TestFraudService_SetLimit_RequiresFraudCaller(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	err := d.svc.SetLimit(context.Background(), principalActor(uuid.New()), &domain.FraudLimit{Principal: uuid.New()})
	assertCode(t, err, "AUTH_003")
}

func TestFraudService_SetLimit_Success(t *testing.T) {
	d := setupFraudService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	actor := domain.Actor{ID: uuid.New(), Roles: []domain.Role{domain.RoleFraudCaller}}
	limit := &domain.FraudLimit{Principal: uuid.New(), ListStatus: domain.ListStatusBlacklisted}

	d.limitRepo.EXPECT().Upsert(ctx, limit).Return(nil)

	require.NoError(t, d.svc.SetLimit(ctx, actor, limit))
	require.False(t, limit.UpdatedAt.IsZero())
}
