package http

import (
	"net/http"

	"vnv-money-backend/internal/usecase/budget"

	"github.com/labstack/echo/v4"
)

type BudgetHandler struct{ uc *budget.Usecase }

func NewBudgetHandler(uc *budget.Usecase) *BudgetHandler { return &BudgetHandler{uc: uc} }

func (h *BudgetHandler) GetBudget(c echo.Context) error {
	b, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

type setBudgetReq struct {
	Total int64 `json:"total" validate:"gte=0"`
}

func (h *BudgetHandler) SetBudgetTotal(c echo.Context) error {
	var req setBudgetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	b, err := h.uc.SetTotal(c.Request().Context(), budget.SetTotalInput{
		NewTotal: req.Total,
		ActorID:  actorID(c),
		IP:       c.RealIP(),
		DeviceID: deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
