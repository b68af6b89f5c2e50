package borrowermock

import (
	"context"

	domain "vnv-money-backend/internal/domain/borrower"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock; unfilled lookups report record-not-found
// so the happy path of guards works without wiring every field.
type Repo struct {
	CreateFn                   func(ctx context.Context, b *domain.Borrower) error
	GetByBorrowerIDFn          func(ctx context.Context, borrowerID string) (*domain.Borrower, error)
	GetByBorrowerIDForUpdateFn func(ctx context.Context, borrowerID string) (*domain.Borrower, error)
	GetByZaloNumberFn          func(ctx context.Context, zalo string) (*domain.Borrower, error)
	SaveFn                     func(ctx context.Context, b *domain.Borrower) error
	DeleteAllExceptFn          func(ctx context.Context, keepBorrowerID string) error
}

func (m *Repo) Create(ctx context.Context, b *domain.Borrower) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBorrowerID(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	if m.GetByBorrowerIDFn != nil {
		return m.GetByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	if m.GetByBorrowerIDForUpdateFn != nil {
		return m.GetByBorrowerIDForUpdateFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByZaloNumber(ctx context.Context, zalo string) (*domain.Borrower, error) {
	if m.GetByZaloNumberFn != nil {
		return m.GetByZaloNumberFn(ctx, zalo)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, b *domain.Borrower) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) DeleteAllExcept(ctx context.Context, keepBorrowerID string) error {
	if m.DeleteAllExceptFn != nil {
		return m.DeleteAllExceptFn(ctx, keepBorrowerID)
	}
	return nil
}
