package admin

import (
	"context"
	"errors"

	"vnv-money-backend/internal/domain/audit"
	"vnv-money-backend/internal/domain/borrower"
	"vnv-money-backend/internal/domain/budget"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type FullResetInput struct {
	KeepActorID string
	IP          string
	DeviceID    string
}

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// ListAuditLogs returns up to limit entries, most recent first.
func (u *Usecase) ListAuditLogs(ctx context.Context, limit int) ([]audit.Entry, error) {
	var out []audit.Entry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		es, err := r.AuditLogs.List(ctx, limit)
		if err != nil {
			return err
		}
		out = es
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FullReset wipes loans, tier requests and the audit log, removes every
// account except the designated operator and reseeds the budget. Running it
// twice lands on the same state.
func (u *Usecase) FullReset(ctx context.Context, in FullResetInput) error {
	if len(in.KeepActorID) != 32 {
		return ErrInvalidInput
	}

	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		keep, err := r.Borrowers.GetByBorrowerID(ctx, in.KeepActorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrNotFound
			}
			return err
		}
		if keep.Role != borrower.RoleOperator {
			return borrower.ErrNotAnOperator
		}

		if err := r.Loans.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.TierRequests.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.AuditLogs.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Borrowers.DeleteAllExcept(ctx, keep.BorrowerID); err != nil {
			return err
		}

		b, err := r.Budget.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		b.Total = budget.ResetTotal
		b.Disbursed = 0
		b.Remaining = budget.ResetTotal
		b.FinesCollected = 0
		if err := r.Budget.Save(ctx, b); err != nil {
			return err
		}

		return r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   keep.BorrowerID,
			PerformerName: keep.FullName,
			Action:        "Executed full system reset",
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		})
	})
}
