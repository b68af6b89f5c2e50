package budget

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("budget not found")
	ErrInsufficientFunds = errors.New("insufficient remaining budget")
	ErrBelowOutstanding  = errors.New("total cannot drop below outstanding disbursed principal")
)

const (
	// SingletonID is the fixed primary key of the one ledger row.
	SingletonID uint64 = 1

	// InitialTotal seeds a fresh installation; ResetTotal is what a full
	// system reset restores, matching the original deployment defaults.
	InitialTotal int64 = 20_000_000
	ResetTotal   int64 = 50_000_000
)

// Budget is the pooled-capital ledger. Amounts are whole VND.
// Invariant: Remaining + Disbursed == Total, 0 <= Disbursed <= Total.
type Budget struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	Total          int64     `gorm:"column:total;not null" json:"total"`
	Disbursed      int64     `gorm:"column:disbursed;not null" json:"disbursed"`
	Remaining      int64     `gorm:"column:remaining;not null" json:"remaining"`
	FinesCollected int64     `gorm:"column:fines_collected;not null" json:"fines_collected"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Budget) TableName() string { return "budgets" }

// New returns a fresh ledger holding total with nothing out.
func New(total int64) *Budget {
	return &Budget{ID: SingletonID, Total: total, Disbursed: 0, Remaining: total, FinesCollected: 0}
}

// Disburse moves amount from remaining to disbursed. The ledger is left
// untouched on failure.
func (b *Budget) Disburse(amount int64) error {
	if amount > b.Remaining {
		return ErrInsufficientFunds
	}
	b.Disbursed += amount
	b.Remaining -= amount
	return nil
}

// Settle releases principal back to remaining and books the fine.
func (b *Budget) Settle(principal, fine int64) {
	b.Remaining += principal
	b.Disbursed -= principal
	b.FinesCollected += fine
}

// SetTotal reconfigures the authorized capital. Rejected when the new total
// cannot cover principal already out.
func (b *Budget) SetTotal(newTotal int64) error {
	if newTotal < b.Disbursed {
		return ErrBelowOutstanding
	}
	b.Total = newTotal
	b.Remaining = newTotal - b.Disbursed
	return nil
}

// Consistent reports whether the ledger invariant holds.
func (b *Budget) Consistent() bool {
	return b.Remaining+b.Disbursed == b.Total && b.Disbursed >= 0 && b.Disbursed <= b.Total
}
