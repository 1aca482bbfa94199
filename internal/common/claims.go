package common

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the JWT payload shared by the token issuer and the HTTP
// middleware. CompanyID is empty for super admins.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
