package uowmock

import (
	"context"

	"vnv-money-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

// UoW satisfies uow.UnitOfWork without a database. By default it invokes the
// handler directly against the repositories in Repos; set WithinTxFn to
// intercept.
type UoW struct {
	Repos      uow.Repos
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}
