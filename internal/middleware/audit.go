package middleware

import (
	"time"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuditMiddleware records mutating API requests per tenant.
type AuditMiddleware struct {
	auditRepo repositories.AuditLogRepository
}

func NewAuditMiddleware(auditRepo repositories.AuditLogRepository) *AuditMiddleware {
	return &AuditMiddleware{auditRepo: auditRepo}
}

// AuditRequest logs POST/PUT/PATCH/DELETE requests after they complete.
// Audit failures are logged, never surfaced to the caller.
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if method != "POST" && method != "PUT" && method != "PATCH" && method != "DELETE" {
				return err
			}

			ctx := c.Request().Context()
			companyID, ok := common.GetCompanyIDFromContext(ctx)
			if !ok {
				// Super-admin and unauthenticated paths carry no tenant.
				return err
			}

			var userPtr *uuid.UUID
			if userID, ok := common.GetUserIDFromContext(ctx); ok {
				userPtr = &userID
			}

			details := models.JSONB{
				"method": method,
				"path":   c.Path(),
				"status": c.Response().Status,
				"ip":     c.RealIP(),
			}
			if err != nil {
				details["error"] = err.Error()
			}

			entry := &models.AuditLog{
				ID:        uuid.New(),
				CompanyID: companyID,
				Action:    method + " " + c.Path(),
				Path:      c.Request().URL.Path,
				UserID:    userPtr,
				Details:   details,
				CreatedAt: time.Now(),
			}
			if insertErr := m.auditRepo.Insert(ctx, entry); insertErr != nil {
				zap.L().Error("Failed to write audit log", zap.Error(insertErr))
			}
			return err
		}
	}
}
