package handlers

import (
	"net/http"
	"strconv"

	"invoicehub/internal/common"
	"invoicehub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ClientHandlers struct {
	clientService services.ClientService
}

func NewClientHandlers(clientService services.ClientService) *ClientHandlers {
	return &ClientHandlers{clientService: clientService}
}

// CreateClient handles POST /api/clients
func (h *ClientHandlers) CreateClient(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	client, err := h.clientService.Create(ctx, companyID, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, client)
}

// GetClients handles GET /api/clients
func (h *ClientHandlers) GetClients(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset := paginationParams(c)
	clients, err := h.clientService.List(ctx, companyID, limit, offset)
	if err != nil {
		zap.L().Error("Failed to list clients", zap.Error(err))
		return common.SendServerError(c, "Failed to list clients")
	}
	return c.JSON(http.StatusOK, clients)
}

// GetClient handles GET /api/clients/:id
func (h *ClientHandlers) GetClient(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	client, err := h.clientService.Get(ctx, companyID, clientID)
	if err != nil {
		return common.SendEntityError(c, "client", err)
	}
	return c.JSON(http.StatusOK, client)
}

// UpdateClient handles PUT /api/clients/:id
func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	client, err := h.clientService.Update(ctx, companyID, clientID, &req)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "client")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /api/clients/:id
func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.clientService.Delete(ctx, companyID, clientID); err != nil {
		return common.SendEntityError(c, "client", err)
	}
	return c.NoContent(http.StatusOK)
}

// paginationParams reads limit/offset query parameters with defaults.
func paginationParams(c echo.Context) (int, int) {
	limit := 50
	offset := 0
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return common.ValidatePaginationParams(limit, offset)
}
