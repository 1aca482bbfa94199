package services

import (
	"context"
	"fmt"
	"time"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"payment_date"`
	Notes       *string         `json:"notes"`
}

type PaymentService interface {
	Record(ctx context.Context, companyID uuid.UUID, req *RecordPaymentRequest) (*models.Payment, bool, error)
	ListByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]*models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	invoiceRepo repositories.InvoiceRepository
	now         func() time.Time
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, invoiceRepo repositories.InvoiceRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

// Record applies a payment against a company-owned invoice. The repository
// re-sums every payment on the invoice inside the same transaction and flips
// the status to paid once the sum covers the total. The returned bool reports
// whether this payment completed the invoice.
func (s *paymentService) Record(ctx context.Context, companyID uuid.UUID, req *RecordPaymentRequest) (*models.Payment, bool, error) {
	if err := common.ValidatePositiveAmount(req.Amount, "amount"); err != nil {
		return nil, false, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, companyID, req.InvoiceID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, false, common.ErrNotFound
		}
		return nil, false, fmt.Errorf("resolve invoice: %w", err)
	}

	paymentDate := s.now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := &models.Payment{
		ID:          uuid.New(),
		InvoiceID:   invoice.ID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
		CreatedAt:   s.now(),
	}

	paid, err := s.paymentRepo.Record(ctx, invoice, payment)
	if err != nil {
		return nil, false, fmt.Errorf("record payment: %w", err)
	}
	return payment, paid, nil
}

func (s *paymentService) ListByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]*models.Payment, error) {
	// Resolve the invoice under company scope first so a foreign invoice id
	// reads as absent rather than leaking its payments.
	invoice, err := s.invoiceRepo.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return s.paymentRepo.ListByInvoice(ctx, invoice.ID)
}
