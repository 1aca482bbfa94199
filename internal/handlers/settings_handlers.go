package handlers

import (
	"net/http"

	"invoicehub/internal/common"
	"invoicehub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SettingsHandlers struct {
	settingsService services.SettingsService
}

func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsService: settingsService}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	settings, err := h.settingsService.Get(ctx, companyID)
	if err != nil {
		zap.L().Error("Failed to load settings", zap.Error(err))
		return common.SendServerError(c, "Failed to load settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	settings, err := h.settingsService.Update(ctx, companyID, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}

// UploadLogo handles POST /api/settings/logo
func (h *SettingsHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return common.SendClientError(c, "logo file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "unable to read logo file")
	}
	defer src.Close()

	url, err := h.settingsService.UploadLogo(ctx, companyID, fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		zap.L().Error("Failed to upload logo", zap.Error(err))
		return common.SendServerError(c, "Failed to upload logo")
	}
	return c.JSON(http.StatusOK, map[string]string{"logo_url": url})
}
