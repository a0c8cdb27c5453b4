package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/samuelarogbonlo/tata-pay/pkg/apperror"
)

// AssetDecimals is the decimal-place count of the settlement asset.
// All amounts are int64 micro-units; no floating point anywhere.
const AssetDecimals = 6

// CollateralAccount tracks per-principal collateral buckets. Conservation
// invariant, always: available + locked + totalWithdrawn + totalSlashed ==
// totalDeposited. Accounts are never deleted, only zero-initialized.
type CollateralAccount struct {
	Principal      uuid.UUID `json:"principal"`
	TotalDeposited int64     `json:"total_deposited"`
	Available      int64     `json:"available"`
	Locked         int64     `json:"locked"`
	TotalWithdrawn int64     `json:"total_withdrawn"`
	TotalSlashed   int64     `json:"total_slashed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCollateralAccount returns a zero-initialized account for a principal.
func NewCollateralAccount(principal uuid.UUID, now time.Time) *CollateralAccount {
	return &CollateralAccount{Principal: principal, CreatedAt: now, UpdatedAt: now}
}

// ConservationHolds reports whether the bucket sums reconcile.
func (a *CollateralAccount) ConservationHolds() bool {
	return a.Available+a.Locked+a.TotalWithdrawn+a.TotalSlashed == a.TotalDeposited
}

// Deposit credits the account. Amount is validated against the minimum by
// the caller; here only the arithmetic is guarded.
func (a *CollateralAccount) Deposit(amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	total, ok := safeAdd(a.TotalDeposited, amount)
	if !ok {
		return apperror.ErrAmountOverflow()
	}
	a.TotalDeposited = total
	a.Available += amount
	return nil
}

// Lock moves amount from available to locked.
func (a *CollateralAccount) Lock(amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if a.Available < amount {
		return apperror.ErrInsufficientAvailable()
	}
	a.Available -= amount
	a.Locked += amount
	return nil
}

// Unlock moves amount from locked back to available.
func (a *CollateralAccount) Unlock(amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if a.Locked < amount {
		return apperror.ErrInsufficientLocked()
	}
	a.Locked -= amount
	a.Available += amount
	return nil
}

// PayFromLocked removes amount from locked and from totalDeposited: a paid
// claim is a permanent exit of funds from the ledger, unlike Unlock.
func (a *CollateralAccount) PayFromLocked(amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if a.Locked < amount {
		return apperror.ErrInsufficientLocked()
	}
	a.Locked -= amount
	a.TotalDeposited -= amount
	return nil
}

// Slash moves amount from locked to totalSlashed.
func (a *CollateralAccount) Slash(amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if a.Locked < amount {
		return apperror.ErrInsufficientLocked()
	}
	a.Locked -= amount
	a.TotalSlashed += amount
	return nil
}

// Withdraw moves amount from available to totalWithdrawn.
func (a *CollateralAccount) Withdraw(amount int64) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if a.Available < amount {
		return apperror.ErrInsufficientAvailable()
	}
	a.Available -= amount
	a.TotalWithdrawn += amount
	return nil
}

// WithdrawalRequest is the single live delayed-withdrawal slot per principal.
// Created by request, consumed by execute or cancel; a new request is
// rejected while an unexecuted one exists.
type WithdrawalRequest struct {
	Principal   uuid.UUID `json:"principal"`
	Amount      int64     `json:"amount"`
	RequestedAt time.Time `json:"requested_at"`
	Executed    bool      `json:"executed"`
}

// Executable reports whether the delay has elapsed at the given instant.
func (w *WithdrawalRequest) Executable(now time.Time, delay time.Duration) bool {
	return !w.Executed && !now.Before(w.RequestedAt.Add(delay))
}

func safeAdd(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}
