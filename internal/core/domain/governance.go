package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProposalKind is the administrative action a proposal carries.
type ProposalKind string

const (
	ProposalSetParam   ProposalKind = "SET_PARAM"
	ProposalGrantRole  ProposalKind = "GRANT_ROLE"
	ProposalRevokeRole ProposalKind = "REVOKE_ROLE"
	ProposalPause      ProposalKind = "PAUSE"
	ProposalUnpause    ProposalKind = "UNPAUSE"
)

// ProposalStatus is the lifecycle state of a governance proposal.
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "PENDING"
	ProposalStatusExecuted  ProposalStatus = "EXECUTED"
	ProposalStatusCancelled ProposalStatus = "CANCELLED"
	ProposalStatusExpired   ProposalStatus = "EXPIRED"
)

// SetParamPayload is the payload of a SET_PARAM proposal.
type SetParamPayload struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// RolePayload is the payload of GRANT_ROLE / REVOKE_ROLE proposals.
type RolePayload struct {
	AccountID uuid.UUID `json:"account_id"`
	Role      Role      `json:"role"`
}

// Proposal is one M-of-N timelocked administrative action. Approvals
// accumulate until the threshold; execution additionally requires the
// timelock (ETA) to have elapsed and the proposal not to have expired.
type Proposal struct {
	ID            uuid.UUID       `json:"id"`
	Kind          ProposalKind    `json:"kind"`
	Payload       json.RawMessage `json:"payload"`
	Proposer      uuid.UUID       `json:"proposer"`
	Threshold     int64           `json:"threshold"`
	ApprovalCount int64           `json:"approval_count"`
	Status        ProposalStatus  `json:"status"`
	Expedited     bool            `json:"expedited"`
	CreatedAt     time.Time       `json:"created_at"`
	ETA           time.Time       `json:"eta"`
	ExpiresAt     time.Time       `json:"expires_at"`
	ExecutedAt    *time.Time      `json:"executed_at,omitempty"`
}

// Expired reports whether the proposal lifetime has run out.
func (p *Proposal) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Executable reports whether the proposal can be executed at now.
func (p *Proposal) Executable(now time.Time) bool {
	return p.Status == ProposalStatusPending &&
		p.ApprovalCount >= p.Threshold &&
		!now.Before(p.ETA) &&
		!p.Expired(now)
}
