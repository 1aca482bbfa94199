package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItemInput carries a line item from the caller. Quantity and rate are
// the inputs; the amount is always recomputed server-side.
type InvoiceItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

type CreateInvoiceRequest struct {
	ClientID uuid.UUID          `json:"client_id"`
	Number   string             `json:"number"`
	TaxRate  decimal.Decimal    `json:"tax_rate"`
	DueDate  time.Time          `json:"due_date"`
	Items    []InvoiceItemInput `json:"items"`
}

// UpdateInvoiceRequest is a merge-patch: nil fields are left untouched.
// Status changes are applied as-is; nothing validates the transition.
type UpdateInvoiceRequest struct {
	ClientID *uuid.UUID       `json:"client_id"`
	Number   *string          `json:"number"`
	Status   *string          `json:"status"`
	TaxRate  *decimal.Decimal `json:"tax_rate"`
	DueDate  *time.Time       `json:"due_date"`
}

type InvoiceService interface {
	Create(ctx context.Context, companyID uuid.UUID, req *CreateInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error)
	Get(ctx context.Context, companyID, invoiceID uuid.UUID) (*models.Invoice, error)
	GetBundle(ctx context.Context, companyID, invoiceID uuid.UUID) (*models.InvoiceBundle, error)
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Invoice, error)
	Update(ctx context.Context, companyID, invoiceID uuid.UUID, req *UpdateInvoiceRequest) (*models.Invoice, error)
	Delete(ctx context.Context, companyID, invoiceID uuid.UUID) error
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	clientRepo  repositories.ClientRepository
	settingsSvc SettingsService
	now         func() time.Time
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, clientRepo repositories.ClientRepository, settingsSvc SettingsService) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		settingsSvc: settingsSvc,
		now:         time.Now,
	}
}

// numberPattern matches generated invoice numbers. Anything else (manual or
// legacy numbers) is stored as-is but ignored when deriving the next number.
var numberPattern = regexp.MustCompile(`^INV-(\d+)$`)

// NextNumber derives the next company-scoped invoice number from the stored
// maximum. No persisted counter: the derivation stays correct across restarts
// and multiple instances, and the (company_id, number) uniqueness constraint
// catches the losing side of a race.
func (s *invoiceService) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	numbers, err := s.invoiceRepo.NumbersByCompany(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("scan invoice numbers: %w", err)
	}

	max := 0
	for _, number := range numbers {
		m := numberPattern.FindStringSubmatch(number)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("INV-%03d", max+1), nil
}

// Create inserts an invoice and its items in one transaction. The monetary
// derivations (item amount, subtotal, tax, total) are recomputed here and
// caller-supplied values ignored, so a malformed client cannot store an
// inconsistent invoice. New invoices go straight to "sent" so they count
// toward due totals immediately.
func (s *invoiceService) Create(ctx context.Context, companyID uuid.UUID, req *CreateInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error) {
	if len(req.Items) == 0 {
		return nil, nil, fmt.Errorf("invoice requires at least one item")
	}
	if err := common.ValidateTaxRate(req.TaxRate); err != nil {
		return nil, nil, err
	}

	// Client must belong to the acting company. A foreign client id reads as
	// absent, never as forbidden.
	if _, err := s.clientRepo.GetByID(ctx, companyID, req.ClientID); err != nil {
		if common.IsNotFound(err) {
			return nil, nil, common.ErrNotFound
		}
		return nil, nil, fmt.Errorf("resolve client: %w", err)
	}

	number := req.Number
	if number == "" {
		var err error
		number, err = s.NextNumber(ctx, companyID)
		if err != nil {
			return nil, nil, err
		}
	}

	now := s.now()
	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = now.AddDate(0, 0, 30)
	}

	invoiceID := uuid.New()
	subtotal := decimal.Zero
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, in := range req.Items {
		if err := common.ValidateRequiredString(in.Description, "description"); err != nil {
			return nil, nil, err
		}
		if in.Quantity.Sign() <= 0 {
			return nil, nil, fmt.Errorf("item quantity must be positive")
		}
		if in.Rate.Sign() < 0 {
			return nil, nil, fmt.Errorf("item rate cannot be negative")
		}
		amount := in.Quantity.Mul(in.Rate).Round(2)
		subtotal = subtotal.Add(amount)
		items = append(items, models.InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      amount,
			CreatedAt:   now,
		})
	}

	taxAmount := subtotal.Mul(req.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	invoice := &models.Invoice{
		ID:        invoiceID,
		CompanyID: companyID,
		ClientID:  req.ClientID,
		Number:    number,
		Status:    models.InvoiceStatusSent,
		Subtotal:  subtotal,
		TaxRate:   req.TaxRate,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, items); err != nil {
		return nil, nil, fmt.Errorf("create invoice: %w", err)
	}
	invoice.RefreshOverdue(now)
	return invoice, items, nil
}

func (s *invoiceService) Get(ctx context.Context, companyID, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	invoice.RefreshOverdue(s.now())
	return invoice, nil
}

// GetBundle assembles the full document for PDF and reporting consumers:
// invoice, items, the billed client, and company settings.
func (s *invoiceService) GetBundle(ctx context.Context, companyID, invoiceID uuid.UUID) (*models.InvoiceBundle, error) {
	invoice, err := s.Get(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.ListItems(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	client, err := s.clientRepo.GetByID(ctx, companyID, invoice.ClientID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("load client: %w", err)
	}
	settings, err := s.settingsSvc.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &models.InvoiceBundle{
		Invoice:  invoice,
		Items:    items,
		Client:   client,
		Settings: settings,
	}, nil
}

func (s *invoiceService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, invoice := range invoices {
		invoice.RefreshOverdue(now)
	}
	return invoices, nil
}

// Update applies a merge-patch. Totals are not re-derived here and status
// moves are not validated (nothing stops paid -> draft); both are the
// documented behavior of the current lifecycle.
func (s *invoiceService) Update(ctx context.Context, companyID, invoiceID uuid.UUID, req *UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, companyID, *req.ClientID); err != nil {
			if common.IsNotFound(err) {
				return nil, common.ErrNotFound
			}
			return nil, err
		}
		invoice.ClientID = *req.ClientID
	}
	if req.Number != nil {
		invoice.Number = *req.Number
	}
	if req.Status != nil {
		switch *req.Status {
		case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid:
			invoice.Status = *req.Status
		default:
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
	}
	if req.TaxRate != nil {
		if err := common.ValidateTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
		invoice.TaxRate = *req.TaxRate
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}

	invoice.UpdatedAt = s.now()
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	invoice.RefreshOverdue(s.now())
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, companyID, invoiceID uuid.UUID) error {
	if err := s.invoiceRepo.DeleteCascade(ctx, companyID, invoiceID); err != nil {
		if common.IsNotFound(err) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}
