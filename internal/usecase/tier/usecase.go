package tier

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
	"vnv-money-backend/internal/domain/tierrequest"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

type Usecase struct {
	uow   uow.UnitOfWork
	rules tier.Rules
}

func NewUsecase(tx uow.UnitOfWork, rules tier.Rules) *Usecase {
	return &Usecase{uow: tx, rules: rules}
}

// RequestUpgrade opens a manual tier request. The target must rank strictly
// above the borrower's current tier and only one request may be pending.
func (u *Usecase) RequestUpgrade(ctx context.Context, in RequestUpgradeInput) (*TierRequestDTO, error) {
	if len(in.BorrowerID) != 32 {
		return nil, ErrInvalidInput
	}
	target := tier.Name(strings.ToUpper(strings.TrimSpace(in.Target)))
	if _, ok := tier.Lookup(target); !ok {
		return nil, tier.ErrInvalidTarget
	}

	var dto *TierRequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByBorrowerID(ctx, in.BorrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrNotFound
			}
			return err
		}
		if !tier.Above(target, b.Tier) {
			return tier.ErrInvalidTarget
		}

		_, err = r.TierRequests.GetPendingByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			return tierrequest.ErrConcurrentRequest
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		req := &tierrequest.TierRequest{
			RequestID:     id.NewID32(),
			BorrowerID:    b.BorrowerID,
			RequestedTier: target,
			Status:        tierrequest.StatusPending,
		}
		if err := r.TierRequests.Create(ctx, req); err != nil {
			return err
		}

		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   b.BorrowerID,
			PerformerName: b.FullName,
			Action:        fmt.Sprintf("Requested tier upgrade to %s", target),
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		}); err != nil {
			return err
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Resolve closes a pending request. Approval sets the borrower's tier and
// limit directly and zeroes the settlement counter; rejection touches only
// the request. Either way the request is terminal afterwards.
func (u *Usecase) Resolve(ctx context.Context, in ResolveInput) (*TierRequestDTO, error) {
	decision := strings.ToUpper(strings.TrimSpace(in.Decision))
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidInput
	}
	if len(in.ActorID) != 32 {
		return nil, ErrInvalidInput
	}

	var dto *TierRequestDTO
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

		req, err := r.TierRequests.GetByRequestIDForUpdate(ctx, in.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tierrequest.ErrNotFound
			}
			return err
		}
		if req.Status != tierrequest.StatusPending {
			return tierrequest.ErrAlreadyResolved
		}

		if decision == DecisionApprove {
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, req.BorrowerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return borrower.ErrNotFound
				}
				return err
			}
			cfg, ok := tier.Lookup(req.RequestedTier)
			if !ok {
				return tier.ErrInvalidTarget
			}
			b.Tier = cfg.Name
			b.Limit = cfg.MaxLimit
			b.SettlementProgress = 0
			if err := r.Borrowers.Save(ctx, b); err != nil {
				return err
			}
			req.Status = tierrequest.StatusApproved
		} else {
			req.Status = tierrequest.StatusRejected
		}

		if err := r.TierRequests.Save(ctx, req); err != nil {
			return err
		}

		verb := "Approved"
		if decision == DecisionReject {
			verb = "Rejected"
		}
		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   actor.BorrowerID,
			PerformerName: actor.FullName,
			Action:        fmt.Sprintf("%s tier upgrade to %s for %s", verb, req.RequestedTier, req.BorrowerID),
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		}); err != nil {
			return err
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ApplyOverduePenalties runs the periodic demotion check for asOf. Every
// borrower holding a disbursed loan is debited one progress point per day
// past the due day; the run self-guards per borrower per date, so calling
// it twice for the same date penalizes nobody twice.
func (u *Usecase) ApplyOverduePenalties(ctx context.Context, asOf time.Time) ([]PenalizedBorrower, error) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	var affected []PenalizedBorrower
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		outstanding, err := r.Loans.ListByStatus(ctx, loan.StatusDisbursed)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(outstanding))
		for i := range outstanding {
			borrowerID := outstanding[i].BorrowerID
			if seen[borrowerID] {
				continue
			}
			seen[borrowerID] = true

			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, borrowerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if b.LastPenaltyCheck != nil && !b.LastPenaltyCheck.Before(day) {
				continue
			}

			days := u.rules.OverdueDays(asOf)
			b.LastPenaltyCheck = &day
			if days <= 0 {
				if err := r.Borrowers.Save(ctx, b); err != nil {
					return err
				}
				continue
			}

			p, dropped := u.rules.ApplyOverdue(tier.Progress{Tier: b.Tier, Score: b.SettlementProgress}, days)
			b.SettlementProgress = p.Score
			if dropped > 0 {
				b.Tier = p.Tier
				if cfg, ok := tier.Lookup(p.Tier); ok {
					b.Limit = cfg.MaxLimit
				}
				if err := r.AuditLogs.Append(ctx, &audit.Entry{
					LogID:         id.NewID32(),
					PerformerID:   audit.SystemPerformerID,
					PerformerName: audit.SystemPerformerName,
					Action:        fmt.Sprintf("Demoted %s to tier %s after %d overdue day(s)", b.BorrowerID, b.Tier, days),
				}); err != nil {
					return err
				}
			}
			if err := r.Borrowers.Save(ctx, b); err != nil {
				return err
			}

			affected = append(affected, PenalizedBorrower{
				BorrowerID:         b.BorrowerID,
				Tier:               string(b.Tier),
				Limit:              b.Limit,
				SettlementProgress: b.SettlementProgress,
				TiersDropped:       dropped,
				OverdueDays:        days,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

func toDTO(r *tierrequest.TierRequest) *TierRequestDTO {
	return &TierRequestDTO{
		RequestID:     r.RequestID,
		BorrowerID:    r.BorrowerID,
		RequestedTier: string(r.RequestedTier),
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
