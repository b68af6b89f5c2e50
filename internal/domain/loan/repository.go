package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row within the enclosing tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetInFlightByBorrowerID returns the borrower's requested/processing/
	// approved loan, if any.
	GetInFlightByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Loan, error)
	ListByStatus(ctx context.Context, s Status) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	DeleteAll(ctx context.Context) error
}
