package models

import (
	"time"

	"github.com/google/uuid"
)

// JSONB is a free-form document stored in a jsonb column.
type JSONB map[string]interface{}

// AuditLog records a mutating API request against a tenant.
type AuditLog struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CompanyID uuid.UUID  `json:"company_id" db:"company_id"`
	Action    string     `json:"action" db:"action"`
	Path      string     `json:"path" db:"path"`
	UserID    *uuid.UUID `json:"user_id" db:"user_id"`
	Details   JSONB      `json:"details" db:"details"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
