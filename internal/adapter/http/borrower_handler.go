package http

import (
	"net/http"

	"vnv-money-backend/internal/usecase/borrower"

	"github.com/labstack/echo/v4"
)

type BorrowerHandler struct{ uc *borrower.Usecase }

func NewBorrowerHandler(uc *borrower.Usecase) *BorrowerHandler { return &BorrowerHandler{uc: uc} }

type registerReq struct {
	FullName        string `json:"full_name"        validate:"required"`
	ZaloNumber      string `json:"zalo_number"      validate:"required"`
	CCCD            string `json:"cccd"             validate:"omitempty,len=12"`
	Address         string `json:"address"`
	RefZaloNumber   string `json:"ref_zalo_number"`
	RefRelationship string `json:"ref_relationship"`
}

func (h *BorrowerHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), borrower.RegisterInput{
		FullName:        req.FullName,
		ZaloNumber:      req.ZaloNumber,
		CCCD:            req.CCCD,
		Address:         req.Address,
		RefZaloNumber:   req.RefZaloNumber,
		RefRelationship: req.RefRelationship,
		IP:              c.RealIP(),
		DeviceID:        deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BorrowerHandler) GetBorrower(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
