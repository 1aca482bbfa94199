package repositories

import (
	"context"
	"testing"
	"time"

	"invoicehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      InvoiceRepository
	companyID uuid.UUID
	invoiceID uuid.UUID
	ctx       context.Context
}

func (suite *InvoiceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewInvoiceRepo(mock)
	suite.companyID = uuid.New()
	suite.invoiceID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *InvoiceRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestInvoiceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepoTestSuite))
}

func (suite *InvoiceRepoTestSuite) invoice() *models.Invoice {
	now := time.Now()
	return &models.Invoice{
		ID:        suite.invoiceID,
		CompanyID: suite.companyID,
		ClientID:  uuid.New(),
		Number:    "INV-001",
		Status:    models.InvoiceStatusSent,
		Subtotal:  decimal.NewFromInt(125),
		TaxRate:   decimal.NewFromInt(10),
		TaxAmount: decimal.RequireFromString("12.5"),
		Total:     decimal.RequireFromString("137.5"),
		DueDate:   now.AddDate(0, 0, 30),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (suite *InvoiceRepoTestSuite) TestCreateWithItems_SingleTransaction() {
	invoice := suite.invoice()
	items := []models.InvoiceItem{
		{ID: uuid.New(), InvoiceID: invoice.ID, Description: "Design", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50), Amount: decimal.NewFromInt(100)},
		{ID: uuid.New(), InvoiceID: invoice.ID, Description: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(25), Amount: decimal.NewFromInt(25)},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO invoices`).
		WithArgs(invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.Number, invoice.Status, invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total, invoice.DueDate, invoice.CreatedAt, invoice.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO invoice_items`).
		WithArgs(items[0].ID, items[0].InvoiceID, items[0].Description, items[0].Quantity, items[0].Rate, items[0].Amount, items[0].CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO invoice_items`).
		WithArgs(items[1].ID, items[1].InvoiceID, items[1].Description, items[1].Quantity, items[1].Rate, items[1].Amount, items[1].CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()
	// pgx.BeginFunc issues a deferred Rollback after Commit; real pgx
	// returns ErrTxClosed, pgxmock needs the call accounted for.
	suite.mock.ExpectRollback().Maybe()

	err := suite.repo.CreateWithItems(suite.ctx, invoice, items)
	assert.NoError(suite.T(), err)
}

func (suite *InvoiceRepoTestSuite) TestCreateWithItems_ItemFailureRollsBack() {
	invoice := suite.invoice()
	items := []models.InvoiceItem{
		{ID: uuid.New(), InvoiceID: invoice.ID, Description: "Design", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50), Amount: decimal.NewFromInt(50)},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO invoices`).
		WithArgs(invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.Number, invoice.Status, invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total, invoice.DueDate, invoice.CreatedAt, invoice.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO invoice_items`).
		WithArgs(items[0].ID, items[0].InvoiceID, items[0].Description, items[0].Quantity, items[0].Rate, items[0].Amount, items[0].CreatedAt).
		WillReturnError(assert.AnError)
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, invoice, items)
	assert.Error(suite.T(), err)
}

func (suite *InvoiceRepoTestSuite) TestDeleteCascade_PaymentsThenItemsThenInvoice() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT id FROM invoices WHERE company_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(suite.companyID, suite.invoiceID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(suite.invoiceID))
	suite.mock.ExpectExec(`DELETE FROM payments WHERE invoice_id = \$1`).
		WithArgs(suite.invoiceID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(`DELETE FROM invoice_items WHERE invoice_id = \$1`).
		WithArgs(suite.invoiceID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	suite.mock.ExpectExec(`DELETE FROM invoices WHERE id = \$1`).
		WithArgs(suite.invoiceID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback().Maybe()

	err := suite.repo.DeleteCascade(suite.ctx, suite.companyID, suite.invoiceID)
	assert.NoError(suite.T(), err)
}

func (suite *InvoiceRepoTestSuite) TestDeleteCascade_ForeignInvoiceRollsBack() {
	otherCompany := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT id FROM invoices WHERE company_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(otherCompany, suite.invoiceID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()
	// pgx.BeginFunc rolls back a second time in its deferred cleanup.
	suite.mock.ExpectRollback().Maybe()

	err := suite.repo.DeleteCascade(suite.ctx, otherCompany, suite.invoiceID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *InvoiceRepoTestSuite) TestNumbersByCompany() {
	rows := pgxmock.NewRows([]string{"number"}).
		AddRow("INV-001").
		AddRow("LEGACY-42")

	suite.mock.ExpectQuery(`SELECT number FROM invoices WHERE company_id = \$1`).
		WithArgs(suite.companyID).
		WillReturnRows(rows)

	numbers, err := suite.repo.NumbersByCompany(suite.ctx, suite.companyID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"INV-001", "LEGACY-42"}, numbers)
}

func (suite *InvoiceRepoTestSuite) TestUpdate_ScopedToCompany() {
	invoice := suite.invoice()

	suite.mock.ExpectExec(`UPDATE invoices`).
		WithArgs(invoice.ClientID, invoice.Number, invoice.Status, invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total, invoice.DueDate, invoice.CompanyID, invoice.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.ctx, invoice)
	assert.NoError(suite.T(), err)
}
