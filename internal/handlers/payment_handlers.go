package handlers

import (
	"net/http"

	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PaymentHandlers struct {
	paymentService services.PaymentService
}

func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

type paymentResponse struct {
	*models.Payment
	InvoicePaid bool `json:"invoice_paid"`
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, paid, err := h.paymentService.Record(ctx, companyID, &req)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "invoice")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, paymentResponse{Payment: payment, InvoicePaid: paid})
}

// GetPayments handles GET /api/payments?invoice_id=
func (h *PaymentHandlers) GetPayments(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	invoiceID, err := common.ValidateUUID(c.QueryParam("invoice_id"), "invoice_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	payments, err := h.paymentService.ListByInvoice(ctx, companyID, invoiceID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "invoice")
		}
		zap.L().Error("Failed to list payments", zap.Error(err))
		return common.SendServerError(c, "Failed to list payments")
	}
	return c.JSON(http.StatusOK, payments)
}
