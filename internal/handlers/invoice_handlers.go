package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type InvoiceHandlers struct {
	invoiceService services.InvoiceService
}

func NewInvoiceHandlers(invoiceService services.InvoiceService) *InvoiceHandlers {
	return &InvoiceHandlers{invoiceService: invoiceService}
}

type invoiceResponse struct {
	*models.Invoice
	Items []models.InvoiceItem `json:"items,omitempty"`
}

// CreateInvoice handles POST /api/invoices
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	invoice, items, err := h.invoiceService.Create(ctx, companyID, &req)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "client")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, invoiceResponse{Invoice: invoice, Items: items})
}

// GetInvoices handles GET /api/invoices
func (h *InvoiceHandlers) GetInvoices(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset := paginationParams(c)
	invoices, err := h.invoiceService.List(ctx, companyID, limit, offset)
	if err != nil {
		zap.L().Error("Failed to list invoices", zap.Error(err))
		return common.SendServerError(c, "Failed to list invoices")
	}
	return c.JSON(http.StatusOK, invoices)
}

// GetInvoice handles GET /api/invoices/:id. Returns the complete bundle
// (invoice, items, client, settings) used by document consumers.
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	bundle, err := h.invoiceService.GetBundle(ctx, companyID, invoiceID)
	if err != nil {
		return common.SendEntityError(c, "invoice", err)
	}
	return c.JSON(http.StatusOK, bundle)
}

// NextNumber handles GET /api/invoices/next-number
func (h *InvoiceHandlers) NextNumber(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	number, err := h.invoiceService.NextNumber(ctx, companyID)
	if err != nil {
		zap.L().Error("Failed to derive next invoice number", zap.Error(err))
		return common.SendServerError(c, "Failed to derive next invoice number")
	}
	return c.JSON(http.StatusOK, map[string]string{"number": number})
}

// UpdateInvoice handles PUT /api/invoices/:id
func (h *InvoiceHandlers) UpdateInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	invoice, err := h.invoiceService.Update(ctx, companyID, invoiceID, &req)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "invoice")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles DELETE /api/invoices/:id
func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.invoiceService.Delete(ctx, companyID, invoiceID); err != nil {
		return common.SendEntityError(c, "invoice", err)
	}
	return c.NoContent(http.StatusOK)
}

// GetInvoicePDF handles GET /api/invoices/:id/pdf
func (h *InvoiceHandlers) GetInvoicePDF(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	bundle, err := h.invoiceService.GetBundle(ctx, companyID, invoiceID)
	if err != nil {
		return common.SendEntityError(c, "invoice", err)
	}

	buf, err := renderInvoicePDF(bundle)
	if err != nil {
		zap.L().Error("Failed to render invoice PDF", zap.Error(err))
		return common.SendServerError(c, "Failed to render PDF")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.pdf"`, bundle.Invoice.Number))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func renderInvoicePDF(bundle *models.InvoiceBundle) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, bundle.Settings.CompanyName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice %s", bundle.Invoice.Number))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Billed to: %s", bundle.Client.Name))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Due: %s", bundle.Invoice.DueDate.Format("02-Jan-2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range bundle.Items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, item.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, item.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	currency := bundle.Settings.Currency
	pdf.Cell(0, 7, fmt.Sprintf("Subtotal: %s %s", bundle.Invoice.Subtotal.StringFixed(2), currency))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Tax (%s%%): %s %s", bundle.Invoice.TaxRate.String(), bundle.Invoice.TaxAmount.StringFixed(2), currency))
	pdf.Ln(7)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s %s", bundle.Invoice.Total.StringFixed(2), currency))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
