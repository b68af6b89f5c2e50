package http

import (
	"net/http"

	"vnv-money-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID    string `json:"borrower_id"    validate:"required,hex32"`
	Amount        int64  `json:"amount"         validate:"required,gt=0"`
	AgreementLink string `json:"agreement_link" validate:"omitempty,url"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID:    req.BorrowerID,
		Amount:        req.Amount,
		AgreementLink: req.AgreementLink,
		IP:            c.RealIP(),
		DeviceID:      deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type transitionLoanReq struct {
	Status      string `json:"status"       validate:"required"`
	AccruedFine *int64 `json:"accrued_fine" validate:"omitempty,gte=0"`
}

func (h *LoanHandler) TransitionLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req transitionLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Transition(c.Request().Context(), loan.TransitionInput{
		LoanID:      loanID,
		Target:      req.Status,
		ActorID:     actorID(c),
		AccruedFine: req.AccruedFine,
		IP:          c.RealIP(),
		DeviceID:    deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListBorrowerLoans(c echo.Context) error {
	dtos, err := h.uc.ListByBorrower(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
