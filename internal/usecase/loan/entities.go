package loan

import "time"

type CreateLoanInput struct {
	BorrowerID    string `json:"borrower_id"`
	Amount        int64  `json:"amount"`
	AgreementLink string `json:"agreement_link"`
	IP            string `json:"-"`
	DeviceID      string `json:"-"`
}

type TransitionInput struct {
	LoanID      string
	Target      string
	ActorID     string
	AccruedFine *int64 // optional override consumed at settlement
	IP          string
	DeviceID    string
}

type LoanDTO struct {
	LoanID        string     `json:"loan_id"`
	BorrowerID    string     `json:"borrower_id"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	FineRate      float64    `json:"fine_rate"`
	AccruedFine   int64      `json:"accrued_fine"`
	AgreementLink string     `json:"agreement_link,omitempty"`
	RequestedAt   time.Time  `json:"requested_at"`
	DisbursedAt   *time.Time `json:"disbursed_at,omitempty"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}
