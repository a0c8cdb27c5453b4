package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind is the registered identity type of an API account.
type AccountKind string

const (
	AccountKindPrincipal AccountKind = "PRINCIPAL"
	AccountKindPayee     AccountKind = "PAYEE"
	AccountKindOracle    AccountKind = "ORACLE"
	AccountKindAdmin     AccountKind = "ADMIN"
)

// Account is an authenticated API identity. Principals own collateral
// accounts and batches, payees claim payments, oracles vote.
type Account struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Kind         AccountKind `json:"kind"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Role is a capability granted to an account. Grants are administered
// through governance only.
type Role string

const (
	RoleSettlementOperator Role = "settlement-operator"
	RoleSlasher            Role = "slasher"
	RoleOracleCaller       Role = "oracle-caller"
	RoleFraudCaller        Role = "fraud-caller"
	RoleAdmin              Role = "admin"
)

// RoleGrant is a persisted (account, role) pair.
type RoleGrant struct {
	AccountID uuid.UUID `json:"account_id"`
	Role      Role      `json:"role"`
	GrantedAt time.Time `json:"granted_at"`
}

// Actor is the resolved caller of a mutating operation: identity plus the
// roles in force at call time. Every role-gated service method checks the
// actor explicitly before touching state.
type Actor struct {
	ID    uuid.UUID
	Kind  AccountKind
	Roles []Role
}

// HasRole reports whether the actor holds the role.
func (a Actor) HasRole(r Role) bool {
	for _, have := range a.Roles {
		if have == r {
			return true
		}
	}
	return false
}
