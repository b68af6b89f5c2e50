package budgetmock

import (
	"context"

	domain "vnv-money-backend/internal/domain/budget"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo backs the singleton ledger with an in-memory value; override the
// function fields for failure cases.
type Repo struct {
	Budget         *domain.Budget
	GetFn          func(ctx context.Context) (*domain.Budget, error)
	GetForUpdateFn func(ctx context.Context) (*domain.Budget, error)
	SaveFn         func(ctx context.Context, b *domain.Budget) error
}

func (m *Repo) Get(ctx context.Context) (*domain.Budget, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	if m.Budget == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.Budget, nil
}

func (m *Repo) GetForUpdate(ctx context.Context) (*domain.Budget, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx)
	}
	if m.Budget == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.Budget, nil
}

func (m *Repo) Save(ctx context.Context, b *domain.Budget) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	m.Budget = b
	return nil
}
