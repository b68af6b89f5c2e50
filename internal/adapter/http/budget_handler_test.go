package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	borrowerDomain "vnv-money-backend/internal/domain/borrower"
	budgetDomain "vnv-money-backend/internal/domain/budget"
	tierDomain "vnv-money-backend/internal/domain/tier"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/internal/testutil/auditmock"
	"vnv-money-backend/internal/testutil/borrowermock"
	"vnv-money-backend/internal/testutil/budgetmock"
	"vnv-money-backend/internal/testutil/uowmock"
	uc "vnv-money-backend/internal/usecase/budget"

	"github.com/labstack/echo/v4"
)

func newBudgetUsecase(borrowers *borrowermock.Repo, ledger *budgetDomain.Budget) *uc.Usecase {
	return uc.NewUsecase(uowmock.New(uow.Repos{
		Borrowers: borrowers,
		Budget:    &budgetmock.Repo{Budget: ledger},
		AuditLogs: &auditmock.Repo{},
	}))
}

func TestGetBudget(t *testing.T) {
	e := echo.New()
	h := NewBudgetHandler(newBudgetUsecase(&borrowermock.Repo{}, budgetDomain.New(20_000_000)))

	req := httptest.NewRequest(stdhttp.MethodGet, "/v1/budget", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetBudget(c); err != nil {
		t.Fatalf("GetBudget error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got budgetDomain.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Total != 20_000_000 || got.Remaining != 20_000_000 {
		t.Fatalf("unexpected ledger: %+v", got)
	}
}

func TestSetBudgetTotal_BelowOutstanding(t *testing.T) {
	e := newEchoWithValidator()

	operatorID := strings.Repeat("0", 31) + "b"
	borrowers := borrowerRepoWith(&borrowerDomain.Borrower{
		BorrowerID: operatorID, FullName: "Op",
		Role: borrowerDomain.RoleOperator, Tier: tierDomain.Standard,
	})
	ledger := budgetDomain.New(20_000_000)
	_ = ledger.Disburse(5_000_000)
	h := NewBudgetHandler(newBudgetUsecase(borrowers, ledger))

	req := httptest.NewRequest(stdhttp.MethodPut, "/v1/budget", mustJSON(map[string]any{
		"total": 3_000_000,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderActorID, operatorID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SetBudgetTotal(c); err != nil {
		t.Fatalf("SetBudgetTotal error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestSetBudgetTotal_Success(t *testing.T) {
	e := newEchoWithValidator()

	operatorID := strings.Repeat("0", 31) + "b"
	borrowers := borrowerRepoWith(&borrowerDomain.Borrower{
		BorrowerID: operatorID, FullName: "Op",
		Role: borrowerDomain.RoleOperator, Tier: tierDomain.Standard,
	})
	h := NewBudgetHandler(newBudgetUsecase(borrowers, budgetDomain.New(20_000_000)))

	req := httptest.NewRequest(stdhttp.MethodPut, "/v1/budget", mustJSON(map[string]any{
		"total": 50_000_000,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderActorID, operatorID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SetBudgetTotal(c); err != nil {
		t.Fatalf("SetBudgetTotal error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got budgetDomain.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Total != 50_000_000 || got.Remaining != 50_000_000 {
		t.Fatalf("unexpected ledger: %+v", got)
	}
}
