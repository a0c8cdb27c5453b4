package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	accountRepo ports.AccountRepository
	roleRepo    ports.RoleRepository
	hashSvc     ports.HashService
	tokenSvc    ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	accountRepo ports.AccountRepository,
	roleRepo ports.RoleRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		roleRepo:    roleRepo,
		hashSvc:     hashSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register creates a new API account.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.Account, error) {
	switch req.Kind {
	case domain.AccountKindPrincipal, domain.AccountKindPayee, domain.AccountKindOracle, domain.AccountKindAdmin:
	default:
		return nil, apperror.Validation("unknown account kind")
	}
	if len(req.Username) < 3 || len(req.Password) < 8 {
		return nil, apperror.Validation("username must be at least 3 and password at least 8 characters")
	}

	existing, err := s.accountRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Kind:         req.Kind,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
	}

	return account, nil
}

// Login validates credentials and returns a JWT token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find account: %w", err))
	}
	if account == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, account.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(account.ID, account.Kind)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}

// ResolveActor loads the account and its role grants into an Actor. Admin
// accounts hold the admin role implicitly, so a fresh deployment can
// bootstrap governance before any grants exist.
func (s *AuthServiceImpl) ResolveActor(ctx context.Context, accountID uuid.UUID) (domain.Actor, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Actor{}, apperror.InternalError(fmt.Errorf("find account: %w", err))
	}
	if account == nil {
		return domain.Actor{}, apperror.ErrInvalidToken()
	}

	roles, err := s.roleRepo.ListRoles(ctx, accountID)
	if err != nil {
		return domain.Actor{}, apperror.InternalError(fmt.Errorf("list roles: %w", err))
	}

	actor := domain.Actor{ID: account.ID, Kind: account.Kind, Roles: roles}
	if account.Kind == domain.AccountKindAdmin && !actor.HasRole(domain.RoleAdmin) {
		actor.Roles = append(actor.Roles, domain.RoleAdmin)
	}

	return actor, nil
}
