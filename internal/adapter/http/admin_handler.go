package http

import (
	"net/http"
	"strconv"

	"vnv-money-backend/internal/usecase/admin"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *admin.Usecase }

func NewAdminHandler(uc *admin.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) FullReset(c echo.Context) error {
	err := h.uc.FullReset(c.Request().Context(), admin.FullResetInput{
		KeepActorID: actorID(c),
		IP:          c.RealIP(),
		DeviceID:    deviceID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reset"})
}

func (h *AdminHandler) ListAuditLogs(c echo.Context) error {
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := h.uc.ListAuditLogs(c.Request().Context(), limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
