package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"servitec/internal/adapter/http/handlers/mocks"
	"servitec/internal/auth"
	"servitec/internal/domain/entities"
	"servitec/internal/usecase"
	"servitec/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestInvoiceHandler_GenerateInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("issues and returns the documents", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice", withPrincipal(staffPrincipal(9, auth.RoleSales)), h.GenerateInvoice)

		actor := int64(9)
		invoices.EXPECT().Generate(gomock.Any(), int64(1), &actor).Return(usecase.GeneratedInvoice{
			Invoice: entities.Invoice{
				OrderID:     1,
				Number:      "001-001-000000005",
				AccessKey:   strings.Repeat("1", 44),
				SubTotal:    100,
				Tax:         12,
				TotalAmount: 112,
				Status:      entities.InvoiceStatusIssued,
			},
			XML: []byte("<invoice/>"),
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "001-001-000000005") {
			t.Fatalf("expected invoice number in body, got %s", w.Body.String())
		}
	})

	t.Run("already issued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice", withPrincipal(staffPrincipal(9, auth.RoleSales)), h.GenerateInvoice)

		invoices.EXPECT().Generate(gomock.Any(), int64(1), gomock.Any()).Return(usecase.GeneratedInvoice{}, usecase.ErrInvoiceAlreadyIssued)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "INVOICE_ALREADY_ISSUED") {
			t.Fatalf("expected INVOICE_ALREADY_ISSUED in body, got %s", w.Body.String())
		}
	})

	t.Run("order not billable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice", withPrincipal(staffPrincipal(9, auth.RoleSales)), h.GenerateInvoice)

		invoices.EXPECT().Generate(gomock.Any(), int64(1), gomock.Any()).Return(usecase.GeneratedInvoice{}, entities.ErrIllegalTransition)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("concurrent status change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice", withPrincipal(staffPrincipal(9, auth.RoleSales)), h.GenerateInvoice)

		invoices.EXPECT().Generate(gomock.Any(), int64(1), gomock.Any()).Return(usecase.GeneratedInvoice{}, interfaces.ErrStatusConflict)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "STATUS_CONFLICT") {
			t.Fatalf("expected STATUS_CONFLICT in body, got %s", w.Body.String())
		}
	})

	t.Run("sequence conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice", withPrincipal(staffPrincipal(9, auth.RoleSales)), h.GenerateInvoice)

		invoices.EXPECT().Generate(gomock.Any(), int64(1), gomock.Any()).Return(usecase.GeneratedInvoice{}, usecase.ErrSequenceConflict)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "INVOICE_SEQUENCE_CONFLICT") {
			t.Fatalf("expected INVOICE_SEQUENCE_CONFLICT in body, got %s", w.Body.String())
		}
	})
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("owner fetches the invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.GET("/v1/orders/:id/invoice", withPrincipal(clientPrincipal(4)), h.GetInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusInvoiced}, nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{
			OrderID: 1,
			Number:  "001-001-000000005",
			Status:  entities.InvoiceStatusIssued,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("another client's invoice is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.GET("/v1/orders/:id/invoice", withPrincipal(clientPrincipal(5)), h.GetInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusInvoiced}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("no invoice yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.GET("/v1/orders/:id/invoice", withPrincipal(clientPrincipal(4)), h.GetInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusCompleted}, nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/1/invoice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_ListPayments(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("owner lists payment attempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.GET("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(4)), h.ListPayments)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusInvoiced}, nil)
		invoices.EXPECT().ListPayments(gomock.Any(), int64(1)).Return([]entities.Payment{
			{ID: "pay-1", OrderID: 1, Status: entities.PaymentStatusDenied},
			{ID: "pay-2", OrderID: 1, Status: entities.PaymentStatusApproved},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/1/invoice/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "pay-1") || !strings.Contains(w.Body.String(), "pay-2") {
			t.Fatalf("expected both payments in body, got %s", w.Body.String())
		}
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.GET("/v1/orders/:id/invoice/payments", withPrincipal(staffPrincipal(9, auth.RoleSales)), h.ListPayments)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusInvoiced}, nil)
		invoices.EXPECT().ListPayments(gomock.Any(), int64(1)).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/1/invoice/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Fatalf("expected empty array, got %s", w.Body.String())
		}
	})

	t.Run("another client's payments are forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.GET("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(5)), h.ListPayments)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusInvoiced}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/1/invoice/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_PayInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	owned := entities.ServiceOrder{ID: 1, ClientID: 4, Status: entities.StatusInvoiced}

	t.Run("empty body becomes an empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(4)), h.PayInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(owned, nil)
		invoices.EXPECT().Pay(gomock.Any(), int64(1), json.RawMessage("{}")).Return(entities.Payment{
			ID:      "pay-1",
			OrderID: 1,
			Amount:  112,
			Status:  entities.PaymentStatusApproved,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "pay-1") {
			t.Fatalf("expected payment id in body, got %s", w.Body.String())
		}
	})

	t.Run("envelope payload is unwrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(4)), h.PayInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(owned, nil)
		invoices.EXPECT().Pay(gomock.Any(), int64(1), json.RawMessage(`{"payment_method_id":"pix"}`)).Return(entities.Payment{ID: "pay-2"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice/payments",
			bytes.NewBufferString(`{"provider_payload":{"payment_method_id":"pix"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid json body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(4)), h.PayInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(owned, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("non-owner cannot pay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(5)), h.PayInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(owned, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mocks.NewMockIInvoiceUseCase(ctrl)
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewInvoiceHandler(invoices, orders)

		r := gin.New()
		r.POST("/v1/orders/:id/invoice/payments", withPrincipal(clientPrincipal(4)), h.PayInvoice)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(owned, nil)
		invoices.EXPECT().Pay(gomock.Any(), int64(1), gomock.Any()).Return(entities.Payment{}, usecase.ErrInvoiceAlreadyPaid)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/1/invoice/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}
