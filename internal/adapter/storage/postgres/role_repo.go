package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// RoleRepo implements ports.RoleRepository.
type RoleRepo struct {
	pool Pool
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(pool Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Grant records a role grant within a transaction. Granting an already
// held role is a no-op.
func (r *RoleRepo) Grant(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, role domain.Role, at time.Time) error {
	query := `INSERT INTO role_grants (account_id, role, granted_at) VALUES ($1, $2, $3)
		ON CONFLICT (account_id, role) DO NOTHING`

	if _, err := tx.Exec(ctx, query, accountID, role, at); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

// Revoke removes a role grant within a transaction.
func (r *RoleRepo) Revoke(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, role domain.Role) error {
	query := `DELETE FROM role_grants WHERE account_id = $1 AND role = $2`

	if _, err := tx.Exec(ctx, query, accountID, role); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}

// ListRoles fetches the roles granted to an account.
func (r *RoleRepo) ListRoles(ctx context.Context, accountID uuid.UUID) ([]domain.Role, error) {
	query := `SELECT role FROM role_grants WHERE account_id = $1 ORDER BY role`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}
