package tierrequest

import (
	"errors"
	"time"

	"vnv-money-backend/internal/domain/tier"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("tier request not found")
	ErrAlreadyResolved   = errors.New("tier request already resolved")
	ErrConcurrentRequest = errors.New("borrower already has a pending tier request")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// TierRequest is the manual upgrade path: created by a borrower, resolved
// exactly once by an operator.
type TierRequest struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	RequestID     string         `gorm:"size:32;uniqueIndex:ux_tier_requests_request_id_active" json:"request_id"`
	BorrowerID    string         `gorm:"size:32;index:idx_tier_requests_borrower_active" json:"borrower_id"`
	RequestedTier tier.Name      `gorm:"size:16;column:requested_tier" json:"requested_tier"`
	Status        Status         `gorm:"type:enum('PENDING','APPROVED','REJECTED');default:'PENDING'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TierRequest) TableName() string { return "tier_requests" }
