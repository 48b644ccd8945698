package handler

import (
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/admin/dashboard", h.Stats, middleware.Require(policy.DashboardStats))
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	st, err := h.svc.Stats(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
