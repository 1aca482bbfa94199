package handlers

import (
	"errors"
	"net/http"

	"invoicehub/internal/common"
	"invoicehub/internal/repositories"
	"invoicehub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AdminHandlers struct {
	companyService services.CompanyService
	auditRepo      repositories.AuditLogRepository
}

func NewAdminHandlers(companyService services.CompanyService, auditRepo repositories.AuditLogRepository) *AdminHandlers {
	return &AdminHandlers{companyService: companyService, auditRepo: auditRepo}
}

// CreateCompany handles POST /api/admin/companies
func (h *AdminHandlers) CreateCompany(c echo.Context) error {
	var req services.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	company, err := h.companyService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, company)
}

// GetCompanies handles GET /api/admin/companies
func (h *AdminHandlers) GetCompanies(c echo.Context) error {
	limit, offset := paginationParams(c)
	companies, err := h.companyService.List(c.Request().Context(), limit, offset)
	if err != nil {
		zap.L().Error("Failed to list companies", zap.Error(err))
		return common.SendServerError(c, "Failed to list companies")
	}
	return c.JSON(http.StatusOK, companies)
}

// GetCompany handles GET /api/admin/companies/:id
func (h *AdminHandlers) GetCompany(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	company, err := h.companyService.Get(c.Request().Context(), id)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "company")
		}
		zap.L().Error("Failed to load company", zap.Error(err))
		return common.SendServerError(c, "Failed to load company")
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompany handles PUT /api/admin/companies/:id
func (h *AdminHandlers) UpdateCompany(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	company, err := h.companyService.Update(c.Request().Context(), id, &req)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "company")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/admin/companies/:id
func (h *AdminHandlers) DeleteCompany(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.companyService.Delete(c.Request().Context(), id); err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "company")
		}
		if errors.Is(err, common.ErrCompanyNotEmpty) {
			return common.SendClientError(c, "company has clients or invoices and cannot be deleted")
		}
		zap.L().Error("Failed to delete company", zap.Error(err))
		return common.SendServerError(c, "Failed to delete company")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAuditLogs handles GET /api/admin/companies/:id/audit-logs
func (h *AdminHandlers) GetAuditLogs(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	limit, offset := paginationParams(c)
	logs, err := h.auditRepo.ListByCompany(c.Request().Context(), id, limit, offset)
	if err != nil {
		zap.L().Error("Failed to list audit logs", zap.Error(err))
		return common.SendServerError(c, "Failed to list audit logs")
	}
	return c.JSON(http.StatusOK, logs)
}
