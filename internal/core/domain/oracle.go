package domain

import (
	"time"

	"github.com/google/uuid"
)

// OracleRecord is a staked oracle's registration. Oracles are deactivated,
// never deleted, when stake falls below minimum or by administrative action.
type OracleRecord struct {
	Oracle         uuid.UUID `json:"oracle"`
	IsRegistered   bool      `json:"is_registered"`
	IsActive       bool      `json:"is_active"`
	Stake          int64     `json:"stake"`
	ApprovalsCast  int64     `json:"approvals_cast"`
	RejectionsCast int64     `json:"rejections_cast"`
	SlashCount     int64     `json:"slash_count"`
	RegisteredAt   time.Time `json:"registered_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// CanVote reports whether the oracle may cast votes.
func (o *OracleRecord) CanVote() bool {
	return o.IsRegistered && o.IsActive
}

// VoteKind distinguishes approval from rejection votes.
type VoteKind string

const (
	VoteApprove VoteKind = "APPROVE"
	VoteReject  VoteKind = "REJECT"
)

// BatchVoteRecord tallies oracle votes for one batch. Processed guards
// threshold execution: once a decision has been applied it is final, even
// if the opposite tally later reaches threshold too.
type BatchVoteRecord struct {
	BatchID        uuid.UUID `json:"batch_id"`
	ApprovalCount  int64     `json:"approval_count"`
	RejectionCount int64     `json:"rejection_count"`
	Processed      bool      `json:"processed"`
}

// VoteCast is one oracle's vote on one batch. The (batch, oracle) pair is
// unique, so a single oracle's stake is never counted twice.
type VoteCast struct {
	BatchID uuid.UUID `json:"batch_id"`
	Oracle  uuid.UUID `json:"oracle"`
	Kind    VoteKind  `json:"kind"`
	Reason  string    `json:"reason,omitempty"`
	CastAt  time.Time `json:"cast_at"`
}
