package middleware

import (
	"invoicehub/internal/common"
	"invoicehub/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireCompanyScope rejects identities without a company binding. Tenant
// endpoints are unreachable for super admins and half-provisioned tokens.
func RequireCompanyScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := common.GetCompanyIDFromContext(c.Request().Context()); !ok {
				return common.SendForbiddenError(c, "Missing company scope")
			}
			return next(c)
		}
	}
}

// RequireSuperAdmin gates the tenant directory. Staff identities get a 403;
// the directory's contents are never visible to them.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok || role != models.RoleSuperAdmin {
				return common.SendForbiddenError(c, "Admin access required")
			}
			return next(c)
		}
	}
}
