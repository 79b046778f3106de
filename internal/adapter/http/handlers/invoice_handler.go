package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	response "servitec/internal/adapter/http/dto/response"
	"servitec/internal/adapter/http/middleware"
	"servitec/internal/domain/entities"
	"servitec/internal/usecase"
	"servitec/internal/usecase/interfaces"
	"servitec/pkg"
)

// InvoiceHandler handles invoice issuance, lookup and payment. It loads the
// order first so ownership checks run against the real owner.

type InvoiceHandler struct {
	invoices usecase.IInvoiceUseCase
	orders   usecase.IOrderUseCase
}

func NewInvoiceHandler(invoices usecase.IInvoiceUseCase, orders usecase.IOrderUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, orders: orders}
}

// GenerateInvoice issues the invoice for a completed order.
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	log.Printf("[invoice][handler] generate start order_id=%d actor_id=%d", orderID, principal.ID)

	actorID := principal.ID
	generated, err := h.invoices.Generate(c.Request.Context(), orderID, &actorID)
	if err != nil {
		log.Printf("[invoice][handler] generate failed order_id=%d err=%v", orderID, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] generate success order_id=%d number=%s", orderID, generated.Invoice.Number)

	c.JSON(http.StatusCreated, response.FromGeneratedInvoice(generated))
}

// GetInvoice returns the order's invoice. Clients only see their own.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !authorizeOwner(c, principal, order) {
		return
	}

	inv, err := h.invoices.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// PayInvoice charges the invoice total through the payment provider. The
// request body is forwarded to the provider as-is.
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	log.Printf("[invoice][handler] pay start order_id=%d", orderID)

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !authorizeOwner(c, principal, order) {
		return
	}

	payload, err := readProviderPayload(c)
	if err != nil {
		log.Printf("[invoice][handler] pay invalid payload order_id=%d err=%v", orderID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	payment, err := h.invoices.Pay(c.Request.Context(), orderID, payload)
	if err != nil {
		log.Printf("[invoice][handler] pay failed order_id=%d err=%v", orderID, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] pay success order_id=%d payment_id=%s status=%s", orderID, payment.ID, payment.Status)

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// ListPayments returns every payment attempt recorded against the order's
// invoice. Clients only see their own orders.
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !authorizeOwner(c, principal, order) {
		return
	}

	payments, err := h.invoices.ListPayments(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out := make([]response.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, response.FromPayment(p))
	}
	c.JSON(http.StatusOK, out)
}

// readProviderPayload accepts either a bare provider payload or an envelope
// with a provider_payload field. An empty body becomes an empty object so
// mock-mode flows need no payload at all.
func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["provider_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("provider_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceAlreadyIssued):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_ISSUED", "Invoice already issued for this order", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrSequenceConflict):
		return pkg.NewDomainErrorSimple("INVOICE_SEQUENCE_CONFLICT", "Invoice number allocation conflict, retry", http.StatusConflict)
	case errors.Is(err, entities.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("ILLEGAL_TRANSITION", "Order cannot be invoiced from its current status", http.StatusConflict)
	case errors.Is(err, entities.ErrPreconditionFailed):
		return pkg.NewDomainErrorSimple("TRANSITION_PRECONDITION_FAILED", "Order is missing data required for invoicing", http.StatusConflict)
	case errors.Is(err, interfaces.ErrStatusConflict):
		return pkg.NewDomainErrorSimple("STATUS_CONFLICT", "Order was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
