package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// BatchStatus is the settlement state of a batch.
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "PENDING"
	BatchStatusProcessing BatchStatus = "PROCESSING"
	BatchStatusCompleted  BatchStatus = "COMPLETED"
	BatchStatusFailed     BatchStatus = "FAILED"
	BatchStatusTimedOut   BatchStatus = "TIMED_OUT"
)

// batchTransitions is the full transition table of the settlement state
// machine. Pending and Processing are the only states transitions leave;
// the three terminal states are absorbing.
var batchTransitions = map[BatchStatus]map[BatchStatus]bool{
	BatchStatusPending: {
		BatchStatusProcessing: true,
		BatchStatusFailed:     true,
		BatchStatusTimedOut:   true,
	},
	BatchStatusProcessing: {
		BatchStatusCompleted: true,
		BatchStatusFailed:    true,
		BatchStatusTimedOut:  true,
	},
}

// CanTransitionTo reports whether the table permits moving to next.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	return batchTransitions[s][next]
}

// IsTerminal reports whether the status is absorbing.
func (s BatchStatus) IsTerminal() bool {
	return len(batchTransitions[s]) == 0
}

// Payment is one payee line of a batch.
type Payment struct {
	Payee     uuid.UUID  `json:"payee"`
	Amount    int64      `json:"amount"`
	Claimed   bool       `json:"claimed"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
}

// Batch is a set of payee/amount pairs locked and settled as one unit.
// Batches are append-only: created once, mutated by approval, claims and
// terminal transitions, never deleted.
type Batch struct {
	ID           uuid.UUID   `json:"id"`
	Reference    string      `json:"reference"` // owner + per-principal sequence
	Owner        uuid.UUID   `json:"owner"`
	Sequence     int64       `json:"sequence"`
	Payments     []Payment   `json:"payments"`
	TotalAmount  int64       `json:"total_amount"`
	ClaimedTotal int64       `json:"claimed_total"`
	ClaimedCount int64       `json:"claimed_count"`
	Status       BatchStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	ProcessedAt  *time.Time  `json:"processed_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}

// BatchReference derives the stable human-readable batch id from the owner
// and its monotonically increasing per-principal sequence.
func BatchReference(owner uuid.UUID, seq int64) string {
	return fmt.Sprintf("BATCH-%s-%d", owner.String()[:8], seq)
}

// NewBatch validates payee/amount pairs and builds a Pending batch with an
// overflow-checked total. Every validation failure rejects the whole batch.
func NewBatch(owner uuid.UUID, seq int64, payees []uuid.UUID, amounts []int64, maxSize int64, now time.Time) (*Batch, error) {
	if len(payees) != len(amounts) {
		return nil, apperror.ErrLengthMismatch()
	}
	if len(payees) == 0 {
		return nil, apperror.ErrEmptyBatch()
	}
	if int64(len(payees)) > maxSize {
		return nil, apperror.ErrBatchTooLarge(maxSize)
	}

	payments := make([]Payment, 0, len(payees))
	var total int64
	for i, payee := range payees {
		if payee == uuid.Nil {
			return nil, apperror.ErrInvalidPayee()
		}
		if amounts[i] <= 0 {
			return nil, apperror.ErrInvalidAmount()
		}
		sum, ok := safeAdd(total, amounts[i])
		if !ok {
			return nil, apperror.ErrAmountOverflow()
		}
		total = sum
		payments = append(payments, Payment{Payee: payee, Amount: amounts[i]})
	}

	return &Batch{
		ID:          uuid.New(),
		Reference:   BatchReference(owner, seq),
		Owner:       owner,
		Sequence:    seq,
		Payments:    payments,
		TotalAmount: total,
		Status:      BatchStatusPending,
		CreatedAt:   now,
	}, nil
}

// Transition applies the state machine table, rejecting moves it does not
// permit. All status changes go through here.
func (b *Batch) Transition(next BatchStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return apperror.ErrInvalidBatchStatus(string(b.Status))
	}
	b.Status = next
	switch next {
	case BatchStatusProcessing:
		t := now
		b.ProcessedAt = &t
	case BatchStatusCompleted, BatchStatusFailed, BatchStatusTimedOut:
		t := now
		b.CompletedAt = &t
	}
	return nil
}

// FindPayment returns the index of the payee's payment line, or -1.
func (b *Batch) FindPayment(payee uuid.UUID) int {
	for i := range b.Payments {
		if b.Payments[i].Payee == payee {
			return i
		}
	}
	return -1
}

// MarkClaimed records a claim against the payee's line.
func (b *Batch) MarkClaimed(idx int, now time.Time) {
	t := now
	b.Payments[idx].Claimed = true
	b.Payments[idx].ClaimedAt = &t
	b.ClaimedCount++
	b.ClaimedTotal += b.Payments[idx].Amount
}

// FullyClaimed reports whether every payee has claimed.
func (b *Batch) FullyClaimed() bool {
	return b.ClaimedCount == int64(len(b.Payments))
}

// UnclaimedRemainder is the still-locked portion returned to the owner on
// failure or timeout. Paid claims are never reversed.
func (b *Batch) UnclaimedRemainder() int64 {
	return b.TotalAmount - b.ClaimedTotal
}

// TimeoutReference is the timestamp the timeout window is measured from:
// createdAt while Pending, processedAt once Processing.
func (b *Batch) TimeoutReference() time.Time {
	if b.Status == BatchStatusProcessing && b.ProcessedAt != nil {
		return *b.ProcessedAt
	}
	return b.CreatedAt
}
