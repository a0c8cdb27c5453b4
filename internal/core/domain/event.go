package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a state transition on the notification surface.
type EventType string

const (
	EventDeposit             EventType = "collateral.deposited"
	EventWithdrawalRequested EventType = "collateral.withdrawal_requested"
	EventWithdrawalExecuted  EventType = "collateral.withdrawal_executed"
	EventWithdrawalCancelled EventType = "collateral.withdrawal_cancelled"
	EventCollateralLocked    EventType = "collateral.locked"
	EventCollateralUnlocked  EventType = "collateral.unlocked"
	EventCollateralPaid      EventType = "collateral.paid_from_locked"
	EventCollateralSlashed   EventType = "collateral.slashed"

	EventBatchCreated   EventType = "batch.created"
	EventBatchApproved  EventType = "batch.approved"
	EventBatchClaimed   EventType = "batch.claimed"
	EventBatchCompleted EventType = "batch.completed"
	EventBatchFailed    EventType = "batch.failed"
	EventBatchTimedOut  EventType = "batch.timed_out"

	EventOracleRegistered   EventType = "oracle.registered"
	EventOracleDeregistered EventType = "oracle.deregistered"
	EventOracleActivated    EventType = "oracle.activated"
	EventOracleDeactivated  EventType = "oracle.deactivated"
	EventOracleSlashed      EventType = "oracle.slashed"
	EventVoteCast           EventType = "oracle.vote_cast"
	EventThresholdUpdated   EventType = "oracle.threshold_updated"

	EventProposalCreated   EventType = "governance.proposal_created"
	EventProposalApproved  EventType = "governance.proposal_approved"
	EventProposalExecuted  EventType = "governance.proposal_executed"
	EventProposalCancelled EventType = "governance.proposal_cancelled"
	EventParamUpdated      EventType = "governance.param_updated"
	EventRoleGranted       EventType = "governance.role_granted"
	EventRoleRevoked       EventType = "governance.role_revoked"
	EventPaused            EventType = "governance.paused"
	EventUnpaused          EventType = "governance.unpaused"
)

// Event is one structured, timestamped notification carrying the affected
// identifiers and resulting balances/counts. Events are written inside the
// mutating transaction (append-only) and fanned out after commit for
// external auditing and off-chain indexing.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	EntityType string          `json:"entity_type"` // account, batch, oracle, proposal
	EntityID   string          `json:"entity_id"`
	Actor      *uuid.UUID      `json:"actor,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewEvent builds an event; payload must marshal cleanly or the event
// carries a null payload (never blocks the underlying operation).
func NewEvent(t EventType, entityType, entityID string, actor *uuid.UUID, payload interface{}, now time.Time) *Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("null")
	}
	return &Event{
		ID:         uuid.New(),
		Type:       t,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Payload:    raw,
		CreatedAt:  now,
	}
}
