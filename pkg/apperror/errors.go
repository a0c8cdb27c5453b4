package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Code is a stable reason string; downstream tooling keys off it.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) — malformed input, rejected before any state read ----

func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrEmptyBatch() *AppError {
	return New("VAL_002", "Batch must contain at least one payment", http.StatusBadRequest)
}

func ErrBatchTooLarge(max int64) *AppError {
	return New("VAL_003", fmt.Sprintf("Batch exceeds maximum of %d payments", max), http.StatusBadRequest)
}

func ErrLengthMismatch() *AppError {
	return New("VAL_004", "Payees and amounts must have equal length", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_005", "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidPayee() *AppError {
	return New("VAL_006", "Payee identifier is missing or invalid", http.StatusBadRequest)
}

func ErrAmountOverflow() *AppError {
	return New("VAL_007", "Batch total overflows the settlement amount range", http.StatusBadRequest)
}

func ErrInvalidThreshold() *AppError {
	return New("VAL_008", "Approval threshold must be positive and not exceed active oracle count", http.StatusBadRequest)
}

// ---- Balance (BAL) — insufficient funds in a bucket ----

func ErrInsufficientAvailable() *AppError {
	return New("BAL_001", "Insufficient available collateral", http.StatusPaymentRequired)
}

func ErrInsufficientLocked() *AppError {
	return New("BAL_002", "Insufficient locked collateral", http.StatusPaymentRequired)
}

func ErrDepositBelowMinimum(min int64) *AppError {
	return New("BAL_003", fmt.Sprintf("Deposit below minimum of %d", min), http.StatusBadRequest)
}

func ErrStakeBelowMinimum(min int64) *AppError {
	return New("BAL_004", fmt.Sprintf("Stake below minimum of %d", min), http.StatusBadRequest)
}

func ErrInsufficientStake(required int64) *AppError {
	return New("BAL_005", fmt.Sprintf("Stake below slash amount of %d", required), http.StatusPaymentRequired)
}

// ---- State (STA) — operation invalid for current status ----

func ErrInvalidBatchStatus(current string) *AppError {
	return New("STA_001", fmt.Sprintf("Operation not allowed while batch is %s", current), http.StatusConflict)
}

func ErrDuplicateVote() *AppError {
	return New("STA_002", "Oracle has already voted on this batch", http.StatusConflict)
}

func ErrVoteRoundClosed() *AppError {
	return New("STA_003", "A threshold decision has already been applied to this batch", http.StatusConflict)
}

func ErrAlreadyClaimed() *AppError {
	return New("STA_004", "Payment has already been claimed", http.StatusConflict)
}

func ErrNoPaymentForPayee() *AppError {
	return New("STA_005", "Caller has no payment entry in this batch", http.StatusForbidden)
}

func ErrOracleAlreadyRegistered() *AppError {
	return New("STA_006", "Oracle is already registered", http.StatusConflict)
}

func ErrOracleNotActive() *AppError {
	return New("STA_007", "Oracle is not registered or not active", http.StatusForbidden)
}

func ErrWithdrawalPending() *AppError {
	return New("STA_008", "A withdrawal request is already pending", http.StatusConflict)
}

func ErrNoPendingWithdrawal() *AppError {
	return New("STA_009", "No pending withdrawal request", http.StatusConflict)
}

func ErrLedgerPaused() *AppError {
	return New("STA_010", "Ledger is paused", http.StatusServiceUnavailable)
}

func ErrProposalNotPending(current string) *AppError {
	return New("STA_011", fmt.Sprintf("Operation not allowed while proposal is %s", current), http.StatusConflict)
}

func ErrDuplicateApproval() *AppError {
	return New("STA_012", "Signer has already approved this proposal", http.StatusConflict)
}

func ErrInsufficientApprovals() *AppError {
	return New("STA_013", "Proposal has not reached its approval threshold", http.StatusConflict)
}

// ---- Resource lookup (RES) ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Temporal (TIME) — timelock or window violations ----

func ErrWithdrawalDelayNotElapsed() *AppError {
	return New("TIME_001", "Withdrawal delay has not elapsed", http.StatusForbidden)
}

func ErrApprovalWindowExpired() *AppError {
	return New("TIME_002", "Batch is past its approval window", http.StatusConflict)
}

func ErrTimeoutNotReached() *AppError {
	return New("TIME_003", "Settlement timeout has not elapsed", http.StatusForbidden)
}

func ErrProposalExpired() *AppError {
	return New("TIME_004", "Proposal lifetime has expired", http.StatusConflict)
}

func ErrTimelockNotElapsed() *AppError {
	return New("TIME_005", "Execution timelock has not elapsed", http.StatusForbidden)
}

// ---- Authorization (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrMissingRole(role string) *AppError {
	return New("AUTH_003", fmt.Sprintf("Caller lacks the %s role", role), http.StatusForbidden)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_004", "Username already exists", http.StatusConflict)
}

// ---- Fraud gate (FRD) ----

func ErrPrincipalBlacklisted() *AppError {
	return New("FRD_001", "Principal is blacklisted", http.StatusForbidden)
}

func ErrVelocityLimitExceeded(window string) *AppError {
	return New("FRD_002", fmt.Sprintf("Velocity limit exceeded for %s window", window), http.StatusTooManyRequests)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}
