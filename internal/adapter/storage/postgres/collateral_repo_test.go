package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

func collateralTestColumns() []string {
	return []string{"principal", "total_deposited", "available", "locked", "total_withdrawn", "total_slashed", "created_at", "updated_at"}
}

func collateralRow(a *domain.CollateralAccount) *pgxmock.Rows {
	return pgxmock.NewRows(collateralTestColumns()).AddRow(
		a.Principal, a.TotalDeposited, a.Available, a.Locked,
		a.TotalWithdrawn, a.TotalSlashed, a.CreatedAt, a.UpdatedAt,
	)
}

func TestCollateralRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCollateralRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	acct := domain.NewCollateralAccount(uuid.New(), now)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collateral_accounts").
		WithArgs(acct.Principal, int64(0), int64(0), int64(0), int64(0), int64(0), now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, acct)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollateralRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCollateralRepo(mock)
	principal := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	acct := &domain.CollateralAccount{
		Principal:      principal,
		TotalDeposited: 10_000_000,
		Available:      6_000_000,
		Locked:         4_000_000,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectQuery("SELECT .+ FROM collateral_accounts WHERE principal").
		WithArgs(principal).
		WillReturnRows(collateralRow(acct))

	result, err := repo.Get(context.Background(), principal)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(6_000_000), result.Available)
	assert.Equal(t, int64(4_000_000), result.Locked)
	assert.True(t, result.ConservationHolds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollateralRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCollateralRepo(mock)
	principal := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM collateral_accounts WHERE principal").
		WithArgs(principal).
		WillReturnRows(pgxmock.NewRows(collateralTestColumns()))

	result, err := repo.Get(context.Background(), principal)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollateralRepo_GetForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCollateralRepo(mock)
	principal := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	acct := &domain.CollateralAccount{Principal: principal, CreatedAt: now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM collateral_accounts WHERE principal .+ FOR UPDATE").
		WithArgs(principal).
		WillReturnRows(collateralRow(acct))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetForUpdate(context.Background(), tx, principal)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, principal, result.Principal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollateralRepo_UpdateBuckets(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCollateralRepo(mock)
	acct := &domain.CollateralAccount{
		Principal:      uuid.New(),
		TotalDeposited: 10_000_000,
		Available:      3_000_000,
		Locked:         7_000_000,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE collateral_accounts").
		WithArgs(acct.TotalDeposited, acct.Available, acct.Locked,
			acct.TotalWithdrawn, acct.TotalSlashed, acct.Principal).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBuckets(context.Background(), tx, acct)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollateralRepo_UpdateBuckets_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCollateralRepo(mock)
	acct := &domain.CollateralAccount{Principal: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE collateral_accounts").
		WithArgs(acct.TotalDeposited, acct.Available, acct.Locked,
			acct.TotalWithdrawn, acct.TotalSlashed, acct.Principal).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBuckets(context.Background(), tx, acct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
