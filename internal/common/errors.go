package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// ErrNotFound is returned by services when an entity is absent or belongs to
// a different company. The two cases are deliberately indistinguishable so
// cross-tenant probing cannot enumerate rows.
var ErrNotFound = errors.New("not found")

// ErrCompanyNotEmpty is returned when deleting a company that still owns
// clients or invoices.
var ErrCompanyNotEmpty = errors.New("company still owns records")

// ErrorResponse is the JSON error envelope on every non-2xx response.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a 400 with field-level detail.
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{field: message}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a 400 without field detail.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a 500 with a generic message. Callers log the real
// error server-side; the body never carries storage detail.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a 404.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends a 401.
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// SendForbiddenError sends a 403.
func SendForbiddenError(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, CreateErrorResponse("FORBIDDEN", message, nil))
}

// SendEntityError maps a service error onto the HTTP surface: not-found and
// cross-tenant both become 404, everything else a generic 500.
func SendEntityError(c echo.Context, resource string, err error) error {
	if IsNotFound(err) {
		return SendNotFoundError(c, resource)
	}
	return SendServerError(c, fmt.Sprintf("Failed to access %s", resource))
}

// IsNotFound reports whether err is an absence error, from either the
// service layer or pgx directly.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
