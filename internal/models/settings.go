package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings is per-company configuration. Exactly one row per company,
// lazily created with defaults on first read.
type Settings struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	CompanyID      uuid.UUID       `json:"company_id" db:"company_id"`
	CompanyName    string          `json:"company_name" db:"company_name"`
	Email          string          `json:"email" db:"email"`
	Phone          *string         `json:"phone" db:"phone"`
	Address        *string         `json:"address" db:"address"`
	Currency       string          `json:"currency" db:"currency"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate" db:"default_tax_rate"`
	LogoURL        *string         `json:"logo_url" db:"logo_url"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
