package repositories

import (
	"context"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceBalance pairs an outstanding invoice with the sum of its payments.
type InvoiceBalance struct {
	InvoiceID uuid.UUID
	Total     decimal.Decimal
	Paid      decimal.Decimal
}

type PaymentRepository interface {
	Record(ctx context.Context, invoice *models.Invoice, payment *models.Payment) (paid bool, err error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error)
	TotalIncome(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error)
	OutstandingByCompany(ctx context.Context, companyID uuid.UUID) ([]InvoiceBalance, error)
	RecentTransactions(ctx context.Context, companyID uuid.UUID, limit int) ([]models.Transaction, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepo(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

// Record inserts the payment, then re-sums every payment on the invoice and
// marks the invoice paid when the sum covers the total. The full re-sum makes
// the transition idempotent under replay of the same payment set. Insert and
// status update share one transaction.
func (r *paymentRepo) Record(ctx context.Context, invoice *models.Invoice, payment *models.Payment) (bool, error) {
	var paid bool
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO payments (id, invoice_id, amount, payment_date, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, query, payment.ID, payment.InvoiceID, payment.Amount, payment.PaymentDate, payment.Notes, payment.CreatedAt); err != nil {
			return err
		}

		var total decimal.Decimal
		if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, payment.InvoiceID).Scan(&total); err != nil {
			return err
		}

		if total.GreaterThanOrEqual(invoice.Total) {
			updateQuery := `
				UPDATE invoices
				SET status = $1, updated_at = NOW()
				WHERE company_id = $2 AND id = $3
			`
			if _, err := tx.Exec(ctx, updateQuery, models.InvoiceStatusPaid, invoice.CompanyID, invoice.ID); err != nil {
				return err
			}
			paid = true
		}
		return nil
	})
	return paid, err
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, payment_date, notes, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY payment_date DESC
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.InvoiceID, &payment.Amount, &payment.PaymentDate, &payment.Notes, &payment.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// TotalIncome sums every payment applied to the company's invoices.
func (r *paymentRepo) TotalIncome(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.company_id = $1
	`
	err := r.db.QueryRow(ctx, query, companyID).Scan(&total)
	return total, err
}

// OutstandingByCompany returns the company's sent invoices with their paid
// sums. The due clamping happens in the service.
func (r *paymentRepo) OutstandingByCompany(ctx context.Context, companyID uuid.UUID) ([]InvoiceBalance, error) {
	query := `
		SELECT i.id, i.total, COALESCE(SUM(p.amount), 0)
		FROM invoices i
		LEFT JOIN payments p ON p.invoice_id = i.id
		WHERE i.company_id = $1 AND i.status = $2
		GROUP BY i.id, i.total
	`
	rows, err := r.db.Query(ctx, query, companyID, models.InvoiceStatusSent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []InvoiceBalance
	for rows.Next() {
		balance := InvoiceBalance{}
		if err := rows.Scan(&balance.InvoiceID, &balance.Total, &balance.Paid); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}

func (r *paymentRepo) RecentTransactions(ctx context.Context, companyID uuid.UUID, limit int) ([]models.Transaction, error) {
	query := `
		SELECT p.id, i.id, i.number, c.name, p.amount, p.payment_date
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		JOIN clients c ON c.id = i.client_id
		WHERE i.company_id = $1
		ORDER BY p.payment_date DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx := models.Transaction{}
		if err := rows.Scan(&tx.PaymentID, &tx.InvoiceID, &tx.InvoiceNumber, &tx.ClientName, &tx.Amount, &tx.PaymentDate); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
