package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListStatus is a principal's standing with the fraud gate.
type ListStatus string

const (
	ListStatusNone        ListStatus = "NONE"
	ListStatusBlacklisted ListStatus = "BLACKLISTED"
	ListStatusWhitelisted ListStatus = "WHITELISTED" // bypasses velocity windows
)

// FraudLimit holds per-principal velocity overrides. A zero field means
// "use the deployment default". Absent row means all defaults.
type FraudLimit struct {
	Principal       uuid.UUID  `json:"principal"`
	ListStatus      ListStatus `json:"list_status"`
	HourlyMaxCount  int64      `json:"hourly_max_count"`
	HourlyMaxAmount int64      `json:"hourly_max_amount"`
	DailyMaxCount   int64      `json:"daily_max_count"`
	DailyMaxAmount  int64      `json:"daily_max_amount"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
