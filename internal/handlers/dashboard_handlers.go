package handlers

import (
	"net/http"

	"invoicehub/internal/common"
	"invoicehub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardHandlers struct {
	dashboardService services.DashboardService
}

func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetStats handles GET /api/dashboard/stats
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	stats, err := h.dashboardService.Stats(ctx, companyID)
	if err != nil {
		zap.L().Error("Failed to compute dashboard stats", zap.Error(err))
		return common.SendServerError(c, "Failed to compute dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}
