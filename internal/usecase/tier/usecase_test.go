package tier

import (
	"context"
	"errors"
	"testing"
	"time"

	bdomain "vnv-money-backend/internal/domain/borrower"
	loanDomain "vnv-money-backend/internal/domain/loan"
	"vnv-money-backend/internal/domain/tier"
	"vnv-money-backend/internal/domain/tierrequest"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/internal/testutil/auditmock"
	"vnv-money-backend/internal/testutil/borrowermock"
	"vnv-money-backend/internal/testutil/loanmock"
	"vnv-money-backend/internal/testutil/tierrequestmock"
	"vnv-money-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

const (
	borrowerID = "cccccccccccccccccccccccccccccccc"
	operatorID = "0000000000000000000000000000000b"
)

type fixture struct {
	borrowers map[string]*bdomain.Borrower
	requests  map[string]*tierrequest.TierRequest
	loans     []loanDomain.Loan
	audits    *auditmock.Repo
	uc        *Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		borrowers: map[string]*bdomain.Borrower{},
		requests:  map[string]*tierrequest.TierRequest{},
		audits:    &auditmock.Repo{},
	}

	lookupBorrower := func(_ context.Context, id string) (*bdomain.Borrower, error) {
		if b, ok := f.borrowers[id]; ok {
			return b, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	brepo := &borrowermock.Repo{
		GetByBorrowerIDFn:          lookupBorrower,
		GetByBorrowerIDForUpdateFn: lookupBorrower,
		SaveFn: func(_ context.Context, b *bdomain.Borrower) error {
			f.borrowers[b.BorrowerID] = b
			return nil
		},
	}

	trepo := &tierrequestmock.Repo{
		CreateFn: func(_ context.Context, r *tierrequest.TierRequest) error {
			r.ID = uint64(len(f.requests) + 1)
			r.CreatedAt = time.Now().UTC()
			f.requests[r.RequestID] = r
			return nil
		},
		GetByRequestIDForUpdateFn: func(_ context.Context, id string) (*tierrequest.TierRequest, error) {
			if r, ok := f.requests[id]; ok {
				return r, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetPendingByBorrowerIDFn: func(_ context.Context, id string) (*tierrequest.TierRequest, error) {
			for _, r := range f.requests {
				if r.BorrowerID == id && r.Status == tierrequest.StatusPending {
					return r, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
		SaveFn: func(_ context.Context, r *tierrequest.TierRequest) error {
			f.requests[r.RequestID] = r
			return nil
		},
	}

	lrepo := &loanmock.Repo{
		ListByStatusFn: func(_ context.Context, s loanDomain.Status) ([]loanDomain.Loan, error) {
			var out []loanDomain.Loan
			for _, l := range f.loans {
				if l.Status == s {
					out = append(out, l)
				}
			}
			return out, nil
		},
	}

	f.uc = NewUsecase(uowmock.New(uow.Repos{
		Borrowers:    brepo,
		Loans:        lrepo,
		TierRequests: trepo,
		AuditLogs:    f.audits,
	}), tier.DefaultRules())
	return f
}

func (f *fixture) addBorrower(id string, tname tier.Name, limit int64, progress int) *bdomain.Borrower {
	b := &bdomain.Borrower{
		BorrowerID: id, FullName: "Le Van B", ZaloNumber: "09" + id[:8],
		Role: bdomain.RoleBorrower, Tier: tname, Limit: limit, SettlementProgress: progress,
	}
	f.borrowers[id] = b
	return b
}

func (f *fixture) addOperator(id string) {
	f.borrowers[id] = &bdomain.Borrower{
		BorrowerID: id, FullName: "Pham Thi Op", ZaloNumber: "08" + id[:8],
		Role: bdomain.RoleOperator, Tier: tier.Standard,
	}
}

func (f *fixture) addDisbursedLoan(borrowerID string) {
	f.loans = append(f.loans, loanDomain.Loan{
		LoanID: "a" + borrowerID[:31], BorrowerID: borrowerID,
		Amount: 1_000_000, Status: loanDomain.StatusDisbursed,
	})
}

func TestRequestUpgrade_Success(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 0)

	dto, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{
		BorrowerID: borrowerID, Target: "silver",
	})
	if err != nil {
		t.Fatalf("RequestUpgrade: %v", err)
	}
	if dto.RequestedTier != "SILVER" || dto.Status != string(tierrequest.StatusPending) {
		t.Fatalf("got %+v", dto)
	}
	if len(f.audits.Entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(f.audits.Entries))
	}
}

func TestRequestUpgrade_RejectsNonAscendingTargets(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Gold, 5_000_000, 0)

	for _, target := range []string{"GOLD", "SILVER", "STANDARD", "PLATINUM"} {
		_, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{
			BorrowerID: borrowerID, Target: target,
		})
		if !errors.Is(err, tier.ErrInvalidTarget) {
			t.Errorf("target %s: err = %v, want ErrInvalidTarget", target, err)
		}
	}
}

func TestRequestUpgrade_OnePendingAtATime(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 0)

	if _, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{BorrowerID: borrowerID, Target: "BRONZE"}); err != nil {
		t.Fatalf("first request: %v", err)
	}
	_, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{BorrowerID: borrowerID, Target: "SILVER"})
	if !errors.Is(err, tierrequest.ErrConcurrentRequest) {
		t.Fatalf("err = %v, want ErrConcurrentRequest", err)
	}
}

func TestResolve_ApproveSetsTierLimitAndResetsProgress(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 7)
	f.addOperator(operatorID)

	req, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{BorrowerID: borrowerID, Target: "GOLD"})
	if err != nil {
		t.Fatalf("RequestUpgrade: %v", err)
	}

	dto, err := f.uc.Resolve(context.Background(), ResolveInput{
		RequestID: req.RequestID, Decision: "approve", ActorID: operatorID,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dto.Status != string(tierrequest.StatusApproved) {
		t.Fatalf("request status = %s", dto.Status)
	}

	b := f.borrowers[borrowerID]
	if b.Tier != tier.Gold || b.Limit != 5_000_000 {
		t.Fatalf("borrower after approval: tier=%s limit=%d", b.Tier, b.Limit)
	}
	if b.SettlementProgress != 0 {
		t.Fatalf("progress = %d, want reset to 0", b.SettlementProgress)
	}
}

func TestResolve_RejectLeavesBorrowerUntouched(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 4)
	f.addOperator(operatorID)

	req, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{BorrowerID: borrowerID, Target: "BRONZE"})
	if err != nil {
		t.Fatalf("RequestUpgrade: %v", err)
	}
	dto, err := f.uc.Resolve(context.Background(), ResolveInput{RequestID: req.RequestID, Decision: DecisionReject, ActorID: operatorID})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dto.Status != string(tierrequest.StatusRejected) {
		t.Fatalf("request status = %s", dto.Status)
	}
	b := f.borrowers[borrowerID]
	if b.Tier != tier.Standard || b.SettlementProgress != 4 {
		t.Fatalf("rejection must not touch the borrower: %+v", b)
	}
}

func TestResolve_TerminalOnce(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 0)
	f.addOperator(operatorID)

	req, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{BorrowerID: borrowerID, Target: "BRONZE"})
	if err != nil {
		t.Fatalf("RequestUpgrade: %v", err)
	}
	if _, err := f.uc.Resolve(context.Background(), ResolveInput{RequestID: req.RequestID, Decision: DecisionReject, ActorID: operatorID}); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	_, err = f.uc.Resolve(context.Background(), ResolveInput{RequestID: req.RequestID, Decision: DecisionApprove, ActorID: operatorID})
	if !errors.Is(err, tierrequest.ErrAlreadyResolved) {
		t.Fatalf("err = %v, want ErrAlreadyResolved", err)
	}
}

func TestResolve_RequiresOperator(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 0)

	req, err := f.uc.RequestUpgrade(context.Background(), RequestUpgradeInput{BorrowerID: borrowerID, Target: "BRONZE"})
	if err != nil {
		t.Fatalf("RequestUpgrade: %v", err)
	}
	_, err = f.uc.Resolve(context.Background(), ResolveInput{RequestID: req.RequestID, Decision: DecisionApprove, ActorID: borrowerID})
	if !errors.Is(err, bdomain.ErrNotAnOperator) {
		t.Fatalf("err = %v, want ErrNotAnOperator", err)
	}
}

func TestApplyOverduePenalties_DemotesAndSelfGuards(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Gold, 5_000_000, 2)
	f.addDisbursedLoan(borrowerID)

	// due day 10, the 15th is 5 days late; score 2-5 demotes once to SILVER/7
	asOf := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	affected, err := f.uc.ApplyOverduePenalties(context.Background(), asOf)
	if err != nil {
		t.Fatalf("ApplyOverduePenalties: %v", err)
	}
	if len(affected) != 1 {
		t.Fatalf("affected = %d, want 1", len(affected))
	}
	got := affected[0]
	if got.Tier != "SILVER" || got.SettlementProgress != 7 || got.TiersDropped != 1 || got.OverdueDays != 5 {
		t.Fatalf("got %+v", got)
	}
	b := f.borrowers[borrowerID]
	if b.Tier != tier.Silver || b.Limit != 4_000_000 {
		t.Fatalf("borrower after demotion: tier=%s limit=%d", b.Tier, b.Limit)
	}
	if len(f.audits.Entries) != 1 {
		t.Fatalf("audit entries = %d, want 1 demotion entry", len(f.audits.Entries))
	}

	// same date again: the per-borrower guard makes the run a no-op
	again, err := f.uc.ApplyOverduePenalties(context.Background(), asOf)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second run affected %d borrowers, want 0", len(again))
	}
	if f.borrowers[borrowerID].Tier != tier.Silver {
		t.Fatal("second run must not demote again")
	}

	// the next day debits again
	next, err := f.uc.ApplyOverduePenalties(context.Background(), asOf.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("next-day run: %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("next-day run affected %d, want 1", len(next))
	}
}

func TestApplyOverduePenalties_BeforeDueDayNoChange(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Gold, 5_000_000, 6)
	f.addDisbursedLoan(borrowerID)

	asOf := time.Date(2025, time.June, 5, 8, 0, 0, 0, time.UTC)
	affected, err := f.uc.ApplyOverduePenalties(context.Background(), asOf)
	if err != nil {
		t.Fatalf("ApplyOverduePenalties: %v", err)
	}
	if len(affected) != 0 {
		t.Fatalf("affected = %d, want 0 before the due day", len(affected))
	}
	if got := f.borrowers[borrowerID].SettlementProgress; got != 6 {
		t.Fatalf("progress = %d, want unchanged", got)
	}
}

func TestApplyOverduePenalties_LowestTierFloors(t *testing.T) {
	f := newFixture(t)
	f.addBorrower(borrowerID, tier.Standard, 2_000_000, 1)
	f.addDisbursedLoan(borrowerID)

	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	affected, err := f.uc.ApplyOverduePenalties(context.Background(), asOf)
	if err != nil {
		t.Fatalf("ApplyOverduePenalties: %v", err)
	}
	if len(affected) != 1 {
		t.Fatalf("affected = %d, want 1", len(affected))
	}
	if affected[0].Tier != "STANDARD" || affected[0].SettlementProgress != 0 || affected[0].TiersDropped != 0 {
		t.Fatalf("got %+v, want floor at STANDARD/0", affected[0])
	}
}
