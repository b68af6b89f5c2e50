package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound              = errors.New("loan not found")
	ErrInvalidTransition     = errors.New("invalid loan status transition")
	ErrConcurrentApplication = errors.New("borrower already has an in-flight loan application")
	ErrExceedsLimit          = errors.New("amount exceeds the borrower's tier limit")
)

type Status string

const (
	StatusRequested  Status = "requested"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusDisbursed  Status = "disbursed"
	StatusSettled    Status = "settled"
	StatusRejected   Status = "rejected"
)

// DefaultFineRate is fixed on each loan at creation (daily rate on overdue
// principal; accrual itself happens outside this core).
const DefaultFineRate = 0.001

// transitions is the closed status graph. Rejection is reachable from every
// pre-disbursed status; settled and rejected are terminal.
var transitions = map[Status][]Status{
	StatusRequested:  {StatusProcessing, StatusApproved, StatusRejected},
	StatusProcessing: {StatusApproved, StatusRejected},
	StatusApproved:   {StatusDisbursed, StatusRejected},
	StatusDisbursed:  {StatusSettled},
}

// CanTransition reports whether from → to is a legal move.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// InFlight reports whether s counts against the one-application-per-borrower
// rule (anything not yet disbursed or closed).
func (s Status) InFlight() bool {
	return s == StatusRequested || s == StatusProcessing || s == StatusApproved
}

// Terminal reports whether no further transition leaves s.
func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusProcessing, StatusApproved, StatusDisbursed, StatusSettled, StatusRejected:
		return true
	}
	return false
}

type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID      string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Amount          int64          `gorm:"column:amount;not null" json:"amount"`
	FineRate        float64        `gorm:"type:decimal(6,4);column:fine_rate" json:"fine_rate"`
	AccruedFine     int64          `gorm:"column:accrued_fine;not null;default:0" json:"accrued_fine"`
	AgreementLink   string         `gorm:"type:text;column:agreement_link" json:"agreement_link,omitempty"`
	Status          Status         `gorm:"type:enum('requested','processing','approved','disbursed','settled','rejected');default:'requested'" json:"status"`
	RequestedAt     time.Time      `gorm:"column:requested_at" json:"requested_at"`
	DisbursedAt     *time.Time     `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	SettledAt       *time.Time     `gorm:"column:settled_at" json:"settled_at,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
