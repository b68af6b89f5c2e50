package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByBorrowerID(ctx context.Context, borrowerID string) (*Borrower, error)
	GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*Borrower, error)
	GetByZaloNumber(ctx context.Context, zalo string) (*Borrower, error)
	Save(ctx context.Context, b *Borrower) error
	// DeleteAllExcept removes every borrower but the one kept by a full
	// system reset.
	DeleteAllExcept(ctx context.Context, keepBorrowerID string) error
}
