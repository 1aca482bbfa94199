package middleware

import (
	"context"
	"net/http"

	"invoicehub/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Auth validates the bearer token and copies the authenticated identity
// (user id, company scope, role) into the request context. Everything past
// this middleware trusts those values completely.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(common.AuthClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*common.AuthClaims)
			if !ok {
				return
			}

			ctx := c.Request().Context()
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				ctx = context.WithValue(ctx, common.UserIDKey, userID)
			}
			if companyID, err := uuid.Parse(claims.CompanyID); err == nil {
				ctx = context.WithValue(ctx, common.CompanyIDKey, companyID)
			}
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
