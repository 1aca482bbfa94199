package handlers

import (
	"net/http"

	"invoicehub/internal/caching"
	"invoicehub/internal/repositories"

	"github.com/labstack/echo/v4"
)

type HealthHandlers struct {
	db       repositories.DB
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db repositories.DB, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// Health handles GET /health. Liveness only: the process is up and serving.
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready. Readiness checks the dependencies the
// request path needs; a failing check returns 503 so load balancers stop
// routing here without killing the process.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	checks := map[string]string{"database": "ok", "cache": "ok"}

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}
