package borrower

import (
	"errors"
	"time"

	"vnv-money-backend/internal/domain/tier"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("borrower not found")
	ErrZaloTaken     = errors.New("zalo number already registered")
	ErrNotAnOperator = errors.New("actor is not an operator")
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleOperator Role = "operator"
)

// Borrower is a registered account. Tier, Limit, SettlementProgress and
// LastPenaltyCheck are mutated only by the tier progression engine and the
// tier request workflow.
type Borrower struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID         string         `gorm:"size:32;uniqueIndex:ux_borrowers_borrower_id_active" json:"borrower_id"`
	FullName           string         `gorm:"size:255;not null" json:"full_name"`
	ZaloNumber         string         `gorm:"size:32;uniqueIndex:ux_borrowers_zalo_active" json:"zalo_number"`
	CCCD               string         `gorm:"size:20;column:cccd" json:"cccd"`
	Address            string         `gorm:"type:text" json:"address"`
	Role               Role           `gorm:"type:enum('borrower','operator');default:'borrower'" json:"role"`
	Tier               tier.Name      `gorm:"size:16;column:tier" json:"tier"`
	Limit              int64          `gorm:"column:credit_limit;not null" json:"limit"`
	Verified           bool           `gorm:"column:verified;default:false" json:"verified"`
	SettlementProgress int            `gorm:"column:settlement_progress;not null;default:0" json:"settlement_progress"`
	LastPenaltyCheck   *time.Time     `gorm:"column:last_penalty_check;type:date" json:"-"`
	RefZaloNumber      string         `gorm:"size:32;column:ref_zalo_number" json:"ref_zalo_number,omitempty"`
	RefRelationship    string         `gorm:"size:64;column:ref_relationship" json:"ref_relationship,omitempty"`
	JoinedAt           time.Time      `gorm:"column:joined_at" json:"joined_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Borrower) TableName() string { return "borrowers" }
