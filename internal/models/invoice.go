package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stored invoice statuses. "overdue" is never stored: it is derived at read
// time from a sent invoice whose due date has passed (Invoice.Overdue).
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

type Invoice struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CompanyID uuid.UUID       `json:"company_id" db:"company_id"`
	ClientID  uuid.UUID       `json:"client_id" db:"client_id"`
	Number    string          `json:"number" db:"number"`
	Status    string          `json:"status" db:"status"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate" db:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	Total     decimal.Decimal `json:"total" db:"total"`
	DueDate   time.Time       `json:"due_date" db:"due_date"`
	Overdue   bool            `json:"overdue" db:"-"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// RefreshOverdue recomputes the derived overdue flag against now.
func (i *Invoice) RefreshOverdue(now time.Time) {
	i.Overdue = i.Status == InvoiceStatusSent && i.DueDate.Before(now)
}

// InvoiceItem is a line item. Created atomically with its invoice and
// deleted with it.
type InvoiceItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	Description string          `json:"description" db:"description"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	Rate        decimal.Decimal `json:"rate" db:"rate"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// InvoiceBundle is the complete document handed to PDF/reporting consumers:
// the invoice with its items, the billed client, and the issuing company's
// settings.
type InvoiceBundle struct {
	Invoice  *Invoice      `json:"invoice"`
	Items    []InvoiceItem `json:"items"`
	Client   *Client       `json:"client"`
	Settings *Settings     `json:"settings"`
}
