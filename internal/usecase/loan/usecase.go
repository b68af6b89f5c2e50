package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vnv-money-backend/internal/domain/audit"
	"vnv-money-backend/internal/domain/borrower"
	"vnv-money-backend/internal/domain/loan"
	"vnv-money-backend/internal/domain/tier"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct {
	uow   uow.UnitOfWork
	rules tier.Rules
}

func NewUsecase(tx uow.UnitOfWork, rules tier.Rules) *Usecase {
	return &Usecase{uow: tx, rules: rules}
}

// Create registers a new loan application in the requested state. A borrower
// may hold at most one in-flight application, and the principal must fit the
// borrower's tier ceiling.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.BorrowerID) != 32 || in.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByBorrowerID(ctx, in.BorrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrNotFound
			}
			return err
		}

		_, err = r.Loans.GetInFlightByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			return loan.ErrConcurrentApplication
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if in.Amount > b.Limit {
			return loan.ErrExceedsLimit
		}

		now := time.Now().UTC()
		l := &loan.Loan{
			LoanID:          id.NewID32(),
			BorrowerID:      b.BorrowerID,
			Amount:          in.Amount,
			FineRate:        loan.DefaultFineRate,
			AgreementLink:   in.AgreementLink,
			Status:          loan.StatusRequested,
			RequestedAt:     now,
			StatusUpdatedAt: now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   b.BorrowerID,
			PerformerName: b.FullName,
			Action:        fmt.Sprintf("Requested loan %s for %d VND", l.LoanID, l.Amount),
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		}); err != nil {
			return err
		}

		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Transition moves a loan along the status graph. Disbursement draws on the
// budget ledger, settlement releases principal, books the fine and credits
// the borrower's settlement progress; the whole cascade commits or rolls
// back as one unit.
func (u *Usecase) Transition(ctx context.Context, in TransitionInput) (*LoanDTO, error) {
	target := loan.Status(strings.ToLower(strings.TrimSpace(in.Target)))
	if !target.Valid() || len(in.ActorID) != 32 {
		return nil, ErrInvalidInput
	}

	var dto *LoanDTO
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

		l, err := r.Loans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		if !loan.CanTransition(l.Status, target) {
			return loan.ErrInvalidTransition
		}

		from := l.Status
		now := time.Now().UTC()

		switch target {
		case loan.StatusDisbursed:
			bud, err := r.Budget.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			// On failure the tx rolls back and the loan stays approved.
			if err := bud.Disburse(l.Amount); err != nil {
				return err
			}
			if err := r.Budget.Save(ctx, bud); err != nil {
				return err
			}
			l.DisbursedAt = &now

		case loan.StatusSettled:
			fine := l.AccruedFine
			if in.AccruedFine != nil {
				fine = *in.AccruedFine
				l.AccruedFine = fine
			}
			bud, err := r.Budget.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			bud.Settle(l.Amount, fine)
			if err := r.Budget.Save(ctx, bud); err != nil {
				return err
			}
			l.SettledAt = &now

			if err := u.creditSettlement(ctx, r, l.BorrowerID, in); err != nil {
				return err
			}
		}

		l.Status = target
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   actor.BorrowerID,
			PerformerName: actor.FullName,
			Action:        fmt.Sprintf("Updated loan %s status %s -> %s", l.LoanID, from, target),
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		}); err != nil {
			return err
		}

		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// creditSettlement bumps the owner's settlement progress and applies an
// automatic promotion when the counter reaches the threshold.
func (u *Usecase) creditSettlement(ctx context.Context, r uow.Repos, borrowerID string, in TransitionInput) error {
	owner, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return borrower.ErrNotFound
		}
		return err
	}

	p, promoted := u.rules.ApplySettlement(tier.Progress{Tier: owner.Tier, Score: owner.SettlementProgress})
	owner.Tier = p.Tier
	owner.SettlementProgress = p.Score
	if promoted {
		cfg, ok := tier.Lookup(p.Tier)
		if !ok {
			return tier.ErrInvalidTarget
		}
		owner.Limit = cfg.MaxLimit
		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   audit.SystemPerformerID,
			PerformerName: audit.SystemPerformerName,
			Action:        fmt.Sprintf("Automatic promotion of %s to tier %s", owner.BorrowerID, owner.Tier),
		}); err != nil {
			return err
		}
	}
	return r.Borrowers.Save(ctx, owner)
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	var out []LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ls, err := r.Loans.ListByBorrowerID(ctx, borrowerID)
		if err != nil {
			return err
		}
		out = make([]LoanDTO, 0, len(ls))
		for i := range ls {
			out = append(out, *toDTO(&ls[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:        l.LoanID,
		BorrowerID:    l.BorrowerID,
		Amount:        l.Amount,
		Status:        string(l.Status),
		FineRate:      l.FineRate,
		AccruedFine:   l.AccruedFine,
		AgreementLink: l.AgreementLink,
		RequestedAt:   l.RequestedAt,
		DisbursedAt:   l.DisbursedAt,
		SettledAt:     l.SettledAt,
	}
}
