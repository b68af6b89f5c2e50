package tier

import "time"

type RequestUpgradeInput struct {
	BorrowerID string `json:"borrower_id"`
	Target     string `json:"requested_tier"`
	IP         string `json:"-"`
	DeviceID   string `json:"-"`
}

type ResolveInput struct {
	RequestID string
	Decision  string // APPROVE | REJECT
	ActorID   string
	IP        string
	DeviceID  string
}

type TierRequestDTO struct {
	RequestID     string    `json:"request_id"`
	BorrowerID    string    `json:"borrower_id"`
	RequestedTier string    `json:"requested_tier"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PenalizedBorrower reports one borrower touched by an overdue-penalty run.
type PenalizedBorrower struct {
	BorrowerID         string `json:"borrower_id"`
	Tier               string `json:"tier"`
	Limit              int64  `json:"limit"`
	SettlementProgress int    `json:"settlement_progress"`
	TiersDropped       int    `json:"tiers_dropped"`
	OverdueDays        int    `json:"overdue_days"`
}
