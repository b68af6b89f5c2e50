package http

import (
	"errors"
	"net/http"
	"strings"

	borrowerDomain "vnv-money-backend/internal/domain/borrower"
	budgetDomain "vnv-money-backend/internal/domain/budget"
	loanDomain "vnv-money-backend/internal/domain/loan"
	tierDomain "vnv-money-backend/internal/domain/tier"
	trDomain "vnv-money-backend/internal/domain/tierrequest"
	adminUC "vnv-money-backend/internal/usecase/admin"
	borrowerUC "vnv-money-backend/internal/usecase/borrower"
	budgetUC "vnv-money-backend/internal/usecase/budget"
	loanUC "vnv-money-backend/internal/usecase/loan"
	tierUC "vnv-money-backend/internal/usecase/tier"

	"github.com/labstack/echo/v4"
)

// HeaderActorID carries the 32-hex id of the actor performing a mutating
// command; the idempotency middleware requires it as well.
const HeaderActorID = "Vnv-Actor-Id"

func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
}

func deviceID(c echo.Context) string {
	return c.Request().Header.Get("User-Agent")
}

// writeDomainError maps domain sentinels onto HTTP statuses so every failure
// kind stays distinguishable to the caller.
func writeDomainError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, borrowerDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, trDomain.ErrNotFound),
		errors.Is(err, budgetDomain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, loanDomain.ErrConcurrentApplication),
		errors.Is(err, trDomain.ErrConcurrentRequest),
		errors.Is(err, trDomain.ErrAlreadyResolved),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, borrowerDomain.ErrZaloTaken):
		code = http.StatusConflict
	case errors.Is(err, loanDomain.ErrExceedsLimit),
		errors.Is(err, tierDomain.ErrInvalidTarget),
		errors.Is(err, budgetDomain.ErrInsufficientFunds),
		errors.Is(err, budgetDomain.ErrBelowOutstanding):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, borrowerDomain.ErrNotAnOperator):
		code = http.StatusForbidden
	case errors.Is(err, loanUC.ErrInvalidInput),
		errors.Is(err, tierUC.ErrInvalidInput),
		errors.Is(err, budgetUC.ErrInvalidInput),
		errors.Is(err, adminUC.ErrInvalidInput),
		errors.Is(err, borrowerUC.ErrInvalidInput):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
