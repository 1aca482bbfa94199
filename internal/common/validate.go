package common

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidateUUID validates and parses a UUID path or body parameter.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateEmail validates email shape when the value is non-empty.
func ValidateEmail(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("%s is not a valid email address", fieldName)
	}
	return nil
}

// ValidatePositiveAmount validates a monetary amount.
func ValidatePositiveAmount(value decimal.Decimal, fieldName string) error {
	if value.Sign() <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// ValidateTaxRate validates a percentage tax rate.
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.Sign() < 0 || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("tax rate must be between 0 and 100")
	}
	return nil
}

// ValidatePaginationParams clamps pagination to sane bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
