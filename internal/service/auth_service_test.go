package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports/mocks"
)

type authTestDeps struct {
	svc         *AuthServiceImpl
	accountRepo *mocks.MockAccountRepository
	roleRepo    *mocks.MockRoleRepository
	hashSvc     *mocks.MockHashService
	tokenSvc    *mocks.MockTokenService
	ctrl        *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		roleRepo:    mocks.NewMockRoleRepository(ctrl),
		hashSvc:     mocks.NewMockHashService(ctrl),
		tokenSvc:    mocks.NewMockTokenService(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewAuthService(d.accountRepo, d.roleRepo, d.hashSvc, d.tokenSvc)
	return d
}

func TestAuthService_Register_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByUsername(ctx, "acme-corp").Return(nil, nil)
	d.hashSvc.EXPECT().Hash("s3cretpass").Return("$argon2id$...", nil)
	d.accountRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	acct, err := d.svc.Register(ctx, ports.RegisterRequest{
		Username: "acme-corp",
		Password: "s3cretpass",
		Kind:     domain.AccountKindPrincipal,
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", acct.Username)
	assert.Equal(t, domain.AccountKindPrincipal, acct.Kind)
	assert.NotEqual(t, uuid.Nil, acct.ID)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByUsername(ctx, "acme-corp").Return(&domain.Account{Username: "acme-corp"}, nil)

	_, err := d.svc.Register(ctx, ports.RegisterRequest{
		Username: "acme-corp",
		Password: "s3cretpass",
		Kind:     domain.AccountKindPrincipal,
	})
	assertCode(t, err, "AUTH_004")
}

func TestAuthService_Register_WeakInputRejected(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Register(context.Background(), ports.RegisterRequest{
		Username: "ab",
		Password: "short",
		Kind:     domain.AccountKindPayee,
	})
	assertCode(t, err, "VAL_001")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByUsername(ctx, "acme-corp").Return(&domain.Account{
		ID: uuid.New(), Username: "acme-corp", PasswordHash: "$argon2id$...",
	}, nil)
	d.hashSvc.EXPECT().Verify("wrong", "$argon2id$...").Return(false, nil)

	_, _, err := d.svc.Login(ctx, "acme-corp", "wrong")
	assertCode(t, err, "AUTH_001")
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, nil)

	_, _, err := d.svc.Login(ctx, "ghost", "whatever")
	assertCode(t, err, "AUTH_001")
}

func TestAuthService_ResolveActor_MergesGrantedRoles(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	d.accountRepo.EXPECT().GetByID(ctx, id).Return(&domain.Account{
		ID: id, Kind: domain.AccountKindOracle,
	}, nil)
	d.roleRepo.EXPECT().ListRoles(ctx, id).Return([]domain.Role{domain.RoleOracleCaller}, nil)

	actor, err := d.svc.ResolveActor(ctx, id)
	require.NoError(t, err)
	assert.True(t, actor.HasRole(domain.RoleOracleCaller))
	assert.False(t, actor.HasRole(domain.RoleAdmin))
}

func TestAuthService_ResolveActor_AdminKindImpliesAdminRole(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()
	d.accountRepo.EXPECT().GetByID(ctx, id).Return(&domain.Account{
		ID: id, Kind: domain.AccountKindAdmin,
	}, nil)
	d.roleRepo.EXPECT().ListRoles(ctx, id).Return(nil, nil)

	actor, err := d.svc.ResolveActor(ctx, id)
	require.NoError(t, err)
	assert.True(t, actor.HasRole(domain.RoleAdmin))
}
