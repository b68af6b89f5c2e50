package budget

import (
	"context"
	"errors"
	"fmt"

	"vnv-money-backend/internal/domain/audit"
	"vnv-money-backend/internal/domain/borrower"
	"vnv-money-backend/internal/domain/budget"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type SetTotalInput struct {
	NewTotal int64
	ActorID  string
	IP       string
	DeviceID string
}

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

func (u *Usecase) Get(ctx context.Context) (*budget.Budget, error) {
	var out *budget.Budget
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Budget.Get(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return budget.ErrNotFound
			}
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetTotal reconfigures the authorized capital. The ledger refuses any total
// below the principal currently out, leaving state untouched.
func (u *Usecase) SetTotal(ctx context.Context, in SetTotalInput) (*budget.Budget, error) {
	if in.NewTotal < 0 || len(in.ActorID) != 32 {
		return nil, ErrInvalidInput
	}

	var out *budget.Budget
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := r.Borrowers.GetByBorrowerID(ctx, in.ActorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrNotFound
			}
			return err
		}
		if actor.Role != borrower.RoleOperator {
			return borrower.ErrNotAnOperator
		}

		b, err := r.Budget.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if err := b.SetTotal(in.NewTotal); err != nil {
			return err
		}
		if err := r.Budget.Save(ctx, b); err != nil {
			return err
		}

		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   actor.BorrowerID,
			PerformerName: actor.FullName,
			Action:        fmt.Sprintf("Adjusted budget total to %d VND", in.NewTotal),
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		}); err != nil {
			return err
		}

		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
