package http

import (
	"net/http"
	"time"

	"vnv-money-backend/internal/usecase/tier"

	"github.com/labstack/echo/v4"
)

type TierHandler struct{ uc *tier.Usecase }

func NewTierHandler(uc *tier.Usecase) *TierHandler { return &TierHandler{uc: uc} }

type requestTierReq struct {
	BorrowerID    string `json:"borrower_id"    validate:"required,hex32"`
	RequestedTier string `json:"requested_tier" validate:"required,tiername"`
}

func (h *TierHandler) RequestUpgrade(c echo.Context) error {
	var req requestTierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.RequestUpgrade(c.Request().Context(), tier.RequestUpgradeInput{
		BorrowerID: req.BorrowerID,
		Target:     req.RequestedTier,
		IP:         c.RealIP(),
		DeviceID:   deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type resolveTierReq struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
}

func (h *TierHandler) ResolveRequest(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req resolveTierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Resolve(c.Request().Context(), tier.ResolveInput{
		RequestID: requestID,
		Decision:  req.Decision,
		ActorID:   actorID(c),
		IP:        c.RealIP(),
		DeviceID:  deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type runPenaltiesReq struct {
	// Date of the run, canonical YYYY-MM-DD; defaults to today (UTC).
	AsOf string `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

func (h *TierHandler) RunPenalties(c echo.Context) error {
	var req runPenaltiesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	asOf := time.Now().UTC()
	if req.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOf)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "as_of must be YYYY-MM-DD"})
		}
		asOf = parsed
	}
	affected, err := h.uc.ApplyOverduePenalties(c.Request().Context(), asOf)
	if err != nil {
		return writeDomainError(c, err)
	}
	if affected == nil {
		affected = []tier.PenalizedBorrower{}
	}
	return c.JSON(http.StatusOK, affected)
}
