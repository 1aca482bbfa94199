package repositories

import (
	"context"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InvoiceRepository interface {
	CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Invoice, error)
	ListItems(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceItem, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	DeleteCascade(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Invoice, error)
	NumbersByCompany(ctx context.Context, companyID uuid.UUID) ([]string, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int, error)
}

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepo(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = "id, company_id, client_id, number, status, subtotal, tax_rate, tax_amount, total, due_date, created_at, updated_at"

// CreateWithItems inserts the invoice and its line items in one transaction,
// so a crash never leaves an invoice without its items.
func (r *invoiceRepo) CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO invoices (id, company_id, client_id, number, status, subtotal, tax_rate, tax_amount, total, due_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err := tx.Exec(ctx, query, invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.Number, invoice.Status, invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total, invoice.DueDate, invoice.CreatedAt, invoice.UpdatedAt)
		if err != nil {
			return err
		}
		for i := range items {
			itemQuery := `
				INSERT INTO invoice_items (id, invoice_id, description, quantity, rate, amount, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`
			if _, err := tx.Exec(ctx, itemQuery, items[i].ID, items[i].InvoiceID, items[i].Description, items[i].Quantity, items[i].Rate, items[i].Amount, items[i].CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *invoiceRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, companyID, id).Scan(&invoice.ID, &invoice.CompanyID, &invoice.ClientID, &invoice.Number, &invoice.Status, &invoice.Subtotal, &invoice.TaxRate, &invoice.TaxAmount, &invoice.Total, &invoice.DueDate, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) ListItems(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, rate, amount, created_at
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		item := models.InvoiceItem{}
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.Rate, &item.Amount, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $1, number = $2, status = $3, subtotal = $4, tax_rate = $5, tax_amount = $6, total = $7, due_date = $8, updated_at = NOW()
		WHERE company_id = $9 AND id = $10
	`
	tag, err := r.db.Exec(ctx, query, invoice.ClientID, invoice.Number, invoice.Status, invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total, invoice.DueDate, invoice.CompanyID, invoice.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCascade removes payments, then items, then the invoice row, all in
// one transaction. The order satisfies referential integrity.
func (r *invoiceRepo) DeleteCascade(ctx context.Context, companyID, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var invoiceID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM invoices WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id).Scan(&invoiceID)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE invoice_id = $1`, invoiceID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoiceID); err != nil {
			return err
		}
		return nil
	})
}

func (r *invoiceRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.CompanyID, &invoice.ClientID, &invoice.Number, &invoice.Status, &invoice.Subtotal, &invoice.TaxRate, &invoice.TaxAmount, &invoice.Total, &invoice.DueDate, &invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// NumbersByCompany returns every stored invoice number for the company. The
// next number is derived from the stored maximum rather than a counter, so
// it stays correct across restarts and multiple instances.
func (r *invoiceRepo) NumbersByCompany(ctx context.Context, companyID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT number FROM invoices WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, err
		}
		numbers = append(numbers, number)
	}
	return numbers, rows.Err()
}

func (r *invoiceRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}
