package domain

import "time"

// Runtime parameter keys. Values live in the params table; governance is
// the sole writer. Durations are stored as integer seconds, booleans as 0/1.
const (
	ParamMinimumDeposit        = "minimum_deposit"
	ParamMinimumStake          = "minimum_stake"
	ParamSlashAmount           = "slash_amount"
	ParamMaxBatchSize          = "max_batch_size"
	ParamApprovalThreshold     = "approval_threshold"
	ParamWithdrawalDelaySecs   = "withdrawal_delay_seconds"
	ParamSettlementTimeoutSecs = "settlement_timeout_seconds"
	ParamPaused                = "paused"
)

// Withdrawal delay is admin-configurable within these bounds.
const (
	WithdrawalDelayMin = time.Hour
	WithdrawalDelayMax = 7 * 24 * time.Hour
)

// ValidParamValue checks bounds for governance-set parameters.
func ValidParamValue(key string, value int64) bool {
	switch key {
	case ParamWithdrawalDelaySecs:
		return value >= int64(WithdrawalDelayMin.Seconds()) && value <= int64(WithdrawalDelayMax.Seconds())
	case ParamPaused:
		return value == 0 || value == 1
	case ParamMinimumDeposit, ParamMinimumStake, ParamSlashAmount,
		ParamMaxBatchSize, ParamApprovalThreshold, ParamSettlementTimeoutSecs:
		return value > 0
	default:
		return false
	}
}
