package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Staff users are bound to a company; super admins operate the
// tenant directory and carry no company scope.
const (
	RoleStaff      = "staff"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CompanyID    *uuid.UUID `json:"company_id" db:"company_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize in JSON
	Name         string     `json:"name" db:"name"`
	Role         string     `json:"role" db:"role"`
	Active       bool       `json:"active" db:"active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// TokenResponse is the payload returned by login and refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	CompanyID    string    `json:"company_id,omitempty"`
	Role         string    `json:"role"`
	IssuedAt     time.Time `json:"issued_at"`
}
