package dto

import "encoding/json"

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Kind     string `json:"kind" binding:"required,oneof=PRINCIPAL PAYEE ORACLE ADMIN"`
}

// LoginRequest is the request body for account login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Kind      string `json:"kind"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// DepositRequest is the request body for a collateral deposit.
type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// WithdrawalRequestBody is the request body for a delayed withdrawal request.
type WithdrawalRequestBody struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// EmergencyWithdrawRequest is the admin-only immediate withdrawal body.
type EmergencyWithdrawRequest struct {
	Principal string `json:"principal" binding:"required,uuid"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// SlashRequest is the request body for slashing locked collateral.
type SlashRequest struct {
	Principal string `json:"principal" binding:"required,uuid"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

// CollateralAccountResponse is the balance snapshot of a principal.
type CollateralAccountResponse struct {
	Principal      string `json:"principal"`
	TotalDeposited int64  `json:"total_deposited"`
	Available      int64  `json:"available"`
	Locked         int64  `json:"locked"`
	TotalWithdrawn int64  `json:"total_withdrawn"`
	TotalSlashed   int64  `json:"total_slashed"`
}

// WithdrawalResponse is the state of a pending withdrawal request.
type WithdrawalResponse struct {
	Principal   string `json:"principal"`
	Amount      int64  `json:"amount"`
	RequestedAt string `json:"requested_at"`
	Executed    bool   `json:"executed"`
}

// CreateBatchRequest is the request body for batch creation. Payees and
// amounts are parallel arrays.
type CreateBatchRequest struct {
	Payees  []string `json:"payees" binding:"required,dive,uuid"`
	Amounts []int64  `json:"amounts" binding:"required"`
}

// FailBatchRequest is the request body for failing a batch.
type FailBatchRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// PaymentResponse is one payee line of a batch.
type PaymentResponse struct {
	Payee     string  `json:"payee"`
	Amount    int64   `json:"amount"`
	Claimed   bool    `json:"claimed"`
	ClaimedAt *string `json:"claimed_at,omitempty"`
}

// BatchResponse is the full state of a settlement batch.
type BatchResponse struct {
	ID           string            `json:"id"`
	Reference    string            `json:"reference"`
	Owner        string            `json:"owner"`
	Sequence     int64             `json:"sequence"`
	Status       string            `json:"status"`
	TotalAmount  int64             `json:"total_amount"`
	ClaimedTotal int64             `json:"claimed_total"`
	ClaimedCount int64             `json:"claimed_count"`
	Payments     []PaymentResponse `json:"payments,omitempty"`
	CreatedAt    string            `json:"created_at"`
	ProcessedAt  *string           `json:"processed_at,omitempty"`
	CompletedAt  *string           `json:"completed_at,omitempty"`
}

// BatchListResponse wraps a batch listing.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Count int             `json:"count"`
}

// RegisterOracleRequest is the request body for oracle registration.
type RegisterOracleRequest struct {
	Stake int64 `json:"stake" binding:"required,gt=0"`
}

// VoteRequest is the request body for casting a vote on a batch.
type VoteRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=APPROVE REJECT"`
	Reason string `json:"reason" binding:"max=500"`
}

// SlashOracleRequest is the request body for slashing an oracle's stake.
type SlashOracleRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ThresholdRequest is the request body for setting the approval threshold.
type ThresholdRequest struct {
	Threshold int64 `json:"threshold" binding:"required,gt=0"`
}

// OracleResponse is the state of an oracle registration.
type OracleResponse struct {
	Oracle         string `json:"oracle"`
	IsRegistered   bool   `json:"is_registered"`
	IsActive       bool   `json:"is_active"`
	Stake          int64  `json:"stake"`
	ApprovalsCast  int64  `json:"approvals_cast"`
	RejectionsCast int64  `json:"rejections_cast"`
	SlashCount     int64  `json:"slash_count"`
}

// VoteRecordResponse is the tally state of a batch's vote round.
type VoteRecordResponse struct {
	BatchID        string `json:"batch_id"`
	ApprovalCount  int64  `json:"approval_count"`
	RejectionCount int64  `json:"rejection_count"`
	Processed      bool   `json:"processed"`
}

// ProposeRequest is the request body for creating a governance proposal.
type ProposeRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=SET_PARAM GRANT_ROLE REVOKE_ROLE PAUSE UNPAUSE"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Expedited bool            `json:"expedited"`
}

// ProposalResponse is the full state of a governance proposal.
type ProposalResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Proposer      string          `json:"proposer"`
	Threshold     int64           `json:"threshold"`
	ApprovalCount int64           `json:"approval_count"`
	Status        string          `json:"status"`
	Expedited     bool            `json:"expedited"`
	CreatedAt     string          `json:"created_at"`
	ETA           string          `json:"eta"`
	ExpiresAt     string          `json:"expires_at"`
	ExecutedAt    *string         `json:"executed_at,omitempty"`
}

// FraudLimitRequest is the request body for setting fraud overrides.
type FraudLimitRequest struct {
	Principal       string `json:"principal" binding:"required,uuid"`
	ListStatus      string `json:"list_status" binding:"required,oneof=NONE BLACKLISTED WHITELISTED"`
	HourlyMaxCount  int64  `json:"hourly_max_count" binding:"gte=0"`
	HourlyMaxAmount int64  `json:"hourly_max_amount" binding:"gte=0"`
	DailyMaxCount   int64  `json:"daily_max_count" binding:"gte=0"`
	DailyMaxAmount  int64  `json:"daily_max_amount" binding:"gte=0"`
}

// FraudLimitResponse is the effective fraud standing of a principal.
type FraudLimitResponse struct {
	Principal       string `json:"principal"`
	ListStatus      string `json:"list_status"`
	HourlyMaxCount  int64  `json:"hourly_max_count"`
	HourlyMaxAmount int64  `json:"hourly_max_amount"`
	DailyMaxCount   int64  `json:"daily_max_count"`
	DailyMaxAmount  int64  `json:"daily_max_amount"`
}

// EventResponse is one entry of the notification log.
type EventResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Actor      *string         `json:"actor,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  string          `json:"created_at"`
}
