package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	request "servitec/internal/adapter/http/dto/request"
	response "servitec/internal/adapter/http/dto/response"
	"servitec/internal/adapter/http/middleware"
	"servitec/internal/auth"
	"servitec/internal/domain/entities"
	"servitec/internal/usecase"
	"servitec/internal/usecase/interfaces"
	"servitec/pkg"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errInvalidOrderID      = pkg.NewDomainErrorSimple("INVALID_ORDER_ID", "Order id must be a positive integer", http.StatusBadRequest)
	errMissingPrincipal    = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
)

// OrderHandler handles the service-order workflow endpoints. Role checks
// run in the route middleware; ownership checks that need the loaded order
// happen here, through the same policy engine.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder opens a service order for a client. The receptionist on
// record is the authenticated principal.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), usecase.CreateOrderInput{
		ClientID:       payload.ClientID,
		EquipmentID:    payload.EquipmentID,
		ReceptionistID: principal.ID,
		Notes:          payload.Notes,
	})
	if err != nil {
		log.Printf("[order][handler] create failed client_id=%d err=%v", payload.ClientID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] create success order_id=%d tag=%s", order.ID, order.Tag)

	c.JSON(http.StatusCreated, response.FromServiceOrder(order))
}

// GetOrder returns one order. Clients only see their own.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.usecase.GetByID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if !authorizeOwner(c, principal, order) {
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// ListOrders returns a client's orders. Clients get their own; staff pass
// the client explicitly.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	clientID := principal.ID
	if principal.Kind == auth.KindStaff {
		parsed, err := strconv.ParseInt(c.Query("client_id"), 10, 64)
		if err != nil || parsed <= 0 {
			appErr := pkg.NewDomainErrorSimple("INVALID_CLIENT_ID", "client_id query parameter is required", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		clientID = parsed
	}

	orders, err := h.usecase.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

// GetOrderHistory returns the append-only status ledger.
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	entries, err := h.usecase.History(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrderHistory(entries))
}

// Diagnose records the technician's findings.
func (h *OrderHandler) Diagnose(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var payload request.DiagnoseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Diagnose(c.Request.Context(), orderID, principal.ID, payload.Diagnosis)
	if err != nil {
		log.Printf("[order][handler] diagnose failed order_id=%d err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// SetQuote replaces the order's parts list and total price.
func (h *OrderHandler) SetQuote(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	total, err := payload.ResolveTotal()
	if err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.SetQuote(c.Request.Context(), orderID, payload.ToParts(), total)
	if err != nil {
		log.Printf("[order][handler] quote failed order_id=%d err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// SendProforma marks the quote as sent to the client.
func (h *OrderHandler) SendProforma(c *gin.Context) {
	h.staffTransition(c, h.usecase.SendProforma)
}

// ApproveProforma records the owning client's approval.
func (h *OrderHandler) ApproveProforma(c *gin.Context) {
	h.clientDecision(c, h.usecase.ApproveProforma)
}

// RejectProforma records the owning client's rejection.
func (h *OrderHandler) RejectProforma(c *gin.Context) {
	h.clientDecision(c, h.usecase.RejectProforma)
}

// Requote reopens a rejected proforma for a fresh diagnosis round.
func (h *OrderHandler) Requote(c *gin.Context) {
	h.staffTransition(c, h.usecase.Requote)
}

// StartRepair moves an approved order onto the bench.
func (h *OrderHandler) StartRepair(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.usecase.StartRepair(c.Request.Context(), orderID, principal.ID)
	if err != nil {
		log.Printf("[order][handler] start failed order_id=%d err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// CompleteRepair marks the repair as finished.
func (h *OrderHandler) CompleteRepair(c *gin.Context) {
	h.staffTransition(c, h.usecase.CompleteRepair)
}

// Deliver hands the equipment back to the client and closes the order.
func (h *OrderHandler) Deliver(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.usecase.Deliver(c.Request.Context(), orderID, principal.ID)
	if err != nil {
		log.Printf("[order][handler] deliver failed order_id=%d err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// staffTransition runs a staff-actor status change that accepts a note.
func (h *OrderHandler) staffTransition(
	c *gin.Context,
	transition func(ctx context.Context, orderID, actorID int64, notes string) (entities.ServiceOrder, error),
) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	payload := optionalNotes(c)

	order, err := transition(c.Request.Context(), orderID, principal.ID, payload.Notes)
	if err != nil {
		log.Printf("[order][handler] transition failed order_id=%d err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

// clientDecision runs an owner-only proforma decision. The order is loaded
// first so the ownership predicate sees the real owner.
func (h *OrderHandler) clientDecision(
	c *gin.Context,
	decide func(ctx context.Context, orderID int64, notes string) (entities.ServiceOrder, error),
) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(errMissingPrincipal.HTTPStatus, errMissingPrincipal.ToHTTPError())
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.usecase.GetByID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if !authorizeOwner(c, principal, order) {
		return
	}

	payload := optionalNotes(c)

	updated, err := decide(c.Request.Context(), orderID, payload.Notes)
	if err != nil {
		log.Printf("[order][handler] proforma decision failed order_id=%d err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(updated))
}

// authorizeOwner enforces the ownership predicate against a loaded order.
// Staff principals pass it untouched.
func authorizeOwner(c *gin.Context, principal auth.Principal, order entities.ServiceOrder) bool {
	req := auth.Requirement{Kind: auth.AnyPrincipal}.WithOwner(order.ClientID)
	if decision := auth.Authorize(principal, req); !decision.Allowed {
		appErr := middleware.DenyError(decision.Reason)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return false
	}
	return true
}

// optionalNotes tolerates an empty body; the note is never required.
func optionalNotes(c *gin.Context) request.NotesRequest {
	var payload request.NotesRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&payload)
	}
	return payload
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(errInvalidOrderID.HTTPStatus, errInvalidOrderID.ToHTTPError())
		return 0, false
	}
	return id, true
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderInput):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("ILLEGAL_TRANSITION", "Status change not allowed from the current status", http.StatusConflict)
	case errors.Is(err, entities.ErrPreconditionFailed):
		return pkg.NewDomainErrorSimple("TRANSITION_PRECONDITION_FAILED", "Order is missing data required by this status change", http.StatusConflict)
	case errors.Is(err, interfaces.ErrStatusConflict):
		return pkg.NewDomainErrorSimple("STATUS_CONFLICT", "Order was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
