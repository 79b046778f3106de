package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"servitec/internal/domain/entities"
	"servitec/internal/domain/fiscal"
	"servitec/internal/usecase/interfaces"
	mock_interfaces "servitec/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testFiscalIssuer() fiscal.Issuer {
	return fiscal.Issuer{
		TaxID:         "1790012345001",
		Environment:   "1",
		Establishment: "001",
		EmissionPoint: "001",
		DocumentType:  "01",
		EmissionType:  "1",
	}
}

func billableOrder() entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:             1,
		Status:         entities.StatusCompleted,
		ProformaStatus: entities.ProformaApproved,
		ClientID:       4,
		TotalPrice:     100,
		HistorySeq:     7,
	}
}

func TestInvoiceUseCase_Generate(t *testing.T) {
	newUseCase := func(ctrl *gomock.Controller) (*InvoiceUseCase, *mock_interfaces.MockIInvoiceRepository, *mock_interfaces.MockIServiceOrderRepository, *mock_interfaces.MockICounterRepository, *mock_interfaces.MockIDocumentRenderer) {
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		renderer := mock_interfaces.NewMockIDocumentRenderer(ctrl)
		uc := NewInvoiceUseCase(invoices, orders, nil, counters, nil, renderer, testFiscalIssuer(), 0.12)
		return uc, invoices, orders, counters, renderer
	}

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, orders, _, _ := newUseCase(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.ServiceOrder{}, nil)

		_, err := uc.Generate(context.Background(), 1, nil)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("order not billable yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, orders, _, _ := newUseCase(ctrl)

		o := billableOrder()
		o.Status = entities.StatusInProgress
		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(o, nil)

		_, err := uc.Generate(context.Background(), 1, nil)
		if !errors.Is(err, entities.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("proforma not approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, orders, _, _ := newUseCase(ctrl)

		o := billableOrder()
		o.ProformaStatus = entities.ProformaSent
		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(o, nil)

		_, err := uc.Generate(context.Background(), 1, nil)
		if !errors.Is(err, entities.ErrPreconditionFailed) {
			t.Fatalf("expected ErrPreconditionFailed, got %v", err)
		}
	})

	t.Run("already issued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, invoices, orders, _, _ := newUseCase(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(billableOrder(), nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{OrderID: 1}, nil)

		_, err := uc.Generate(context.Background(), 1, nil)
		if !errors.Is(err, ErrInvoiceAlreadyIssued) {
			t.Fatalf("expected ErrInvoiceAlreadyIssued, got %v", err)
		}
	})

	t.Run("concurrent duplicate loses at the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, invoices, orders, counters, _ := newUseCase(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(billableOrder(), nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{}, nil)
		counters.EXPECT().Next(gomock.Any(), "invoice#001-001").Return(int64(5), nil)
		invoices.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, interfaces.ErrInvoiceExists)

		_, err := uc.Generate(context.Background(), 1, nil)
		if !errors.Is(err, ErrInvoiceAlreadyIssued) {
			t.Fatalf("expected ErrInvoiceAlreadyIssued, got %v", err)
		}
	})

	t.Run("number collision retried once then surfaces conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, invoices, orders, counters, _ := newUseCase(ctrl)

		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(billableOrder(), nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{}, nil)
		counters.EXPECT().Next(gomock.Any(), "invoice#001-001").Return(int64(5), nil)
		counters.EXPECT().Next(gomock.Any(), "invoice#001-001").Return(int64(6), nil)
		invoices.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, interfaces.ErrNumberTaken).Times(2)

		_, err := uc.Generate(context.Background(), 1, nil)
		if !errors.Is(err, ErrSequenceConflict) {
			t.Fatalf("expected ErrSequenceConflict, got %v", err)
		}
	})

	t.Run("issues, transitions and renders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, invoices, orders, counters, renderer := newUseCase(ctrl)

		o := billableOrder()
		orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(o, nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{}, nil)
		counters.EXPECT().Next(gomock.Any(), "invoice#001-001").Return(int64(5), nil)

		var stored entities.Invoice
		invoices.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
				stored = inv
				return inv, nil
			})
		orders.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd interfaces.TransitionCommand) (entities.ServiceOrder, error) {
				if cmd.From != entities.StatusCompleted || cmd.To != entities.StatusInvoiced {
					t.Fatalf("unexpected move %s -> %s", cmd.From, cmd.To)
				}
				if cmd.ExpectedHistorySeq != 7 {
					t.Fatalf("expected seq 7, got %d", cmd.ExpectedHistorySeq)
				}
				out := o
				out.Status = entities.StatusInvoiced
				out.HistorySeq = 8
				return out, nil
			})
		renderer.EXPECT().RenderInvoiceXML(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("<invoice/>"), nil)
		renderer.EXPECT().RenderInvoicePDF(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("pdf renderer not configured"))

		actor := int64(9)
		got, err := uc.Generate(context.Background(), 1, &actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stored.Number != "001-001-000000005" {
			t.Fatalf("unexpected number %s", stored.Number)
		}
		if err := fiscal.ValidateAccessKey(stored.AccessKey); err != nil {
			t.Fatalf("access key does not validate: %v", err)
		}
		if stored.SubTotal != 100 || stored.Tax != 12 || stored.TotalAmount != 112 {
			t.Fatalf("unexpected amounts: %+v", stored)
		}
		if stored.Status != entities.InvoiceStatusIssued {
			t.Fatalf("expected issued, got %s", stored.Status)
		}
		if string(got.XML) != "<invoice/>" {
			t.Fatalf("unexpected xml: %s", got.XML)
		}
		// A missing PDF layout never undoes an issued invoice.
		if got.PDF != nil {
			t.Fatalf("expected nil pdf, got %v", got.PDF)
		}
	})
}

func TestInvoiceUseCase_GetByOrderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
	uc := NewInvoiceUseCase(invoices, nil, nil, nil, nil, nil, testFiscalIssuer(), 0.12)

	invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(entities.Invoice{}, nil)

	_, err := uc.GetByOrderID(context.Background(), 1)
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceUseCase_Pay(t *testing.T) {
	issued := entities.Invoice{
		OrderID:     1,
		Number:      "001-001-000000005",
		TotalAmount: 112,
		Status:      entities.InvoiceStatusIssued,
	}

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(invoices, nil, nil, nil, nil, nil, testFiscalIssuer(), 0.12)

		paid := issued
		paid.Status = entities.InvoiceStatusPaid
		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(paid, nil)

		_, err := uc.Pay(context.Background(), 1, json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvoiceAlreadyPaid) {
			t.Fatalf("expected ErrInvoiceAlreadyPaid, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewInvoiceUseCase(invoices, nil, nil, nil, nil, nil, testFiscalIssuer(), 0.12)

		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(issued, nil)

		_, err := uc.Pay(context.Background(), 1, json.RawMessage(`{}`))
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})

	t.Run("amount always comes from the stored invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewInvoiceUseCase(invoices, nil, payments, nil, gateway, nil, testFiscalIssuer(), 0.12)

		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(issued, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Fatalf("invalid enriched payload: %v", err)
				}
				if req["transaction_amount"] != float64(112) {
					t.Fatalf("expected amount 112, got %v", req["transaction_amount"])
				}
				if req["external_reference"] != "001-001-000000005" {
					t.Fatalf("unexpected external reference: %v", req["external_reference"])
				}
				return "pay-1", "approved", json.RawMessage(`{"status":"approved"}`), nil
			})
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Amount != 112 || p.Status != entities.PaymentStatusApproved {
					t.Fatalf("unexpected payment: %+v", p)
				}
				return p, nil
			})
		invoices.EXPECT().MarkPaid(gomock.Any(), int64(1)).Return(entities.Invoice{}, nil)

		// The client-sent amount is ignored.
		got, err := uc.Pay(context.Background(), 1, json.RawMessage(`{"transaction_amount":1,"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "pay-1" {
			t.Fatalf("unexpected payment id %s", got.ID)
		}
	})

	t.Run("denied payment never marks the invoice paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewInvoiceUseCase(invoices, nil, payments, nil, gateway, nil, testFiscalIssuer(), 0.12)

		invoices.EXPECT().GetByOrderID(gomock.Any(), int64(1)).Return(issued, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(
			"pay-2", "rejected", json.RawMessage(`{"status":"rejected"}`), nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				return p, nil
			})

		got, err := uc.Pay(context.Background(), 1, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusDenied {
			t.Fatalf("expected denied, got %s", got.Status)
		}
	})
}

func TestInvoiceUseCase_ListPayments(t *testing.T) {
	t.Run("invalid order id", func(t *testing.T) {
		uc := NewInvoiceUseCase(nil, nil, nil, nil, nil, nil, testFiscalIssuer(), 0.12)
		if _, err := uc.ListPayments(context.Background(), 0); !errors.Is(err, ErrInvalidOrderInput) {
			t.Fatalf("expected ErrInvalidOrderInput, got %v", err)
		}
	})

	t.Run("returns every recorded attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewInvoiceUseCase(nil, nil, payments, nil, nil, nil, testFiscalIssuer(), 0.12)

		payments.EXPECT().ListByOrderID(gomock.Any(), int64(1)).Return([]entities.Payment{
			{ID: "pay-1", OrderID: 1, Status: entities.PaymentStatusDenied},
			{ID: "pay-2", OrderID: 1, Status: entities.PaymentStatusApproved},
		}, nil)

		got, err := uc.ListPayments(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "pay-1" || got[1].ID != "pay-2" {
			t.Fatalf("unexpected payment list: %+v", got)
		}
	})

	t.Run("no payments yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewInvoiceUseCase(nil, nil, payments, nil, nil, nil, testFiscalIssuer(), 0.12)

		payments.EXPECT().ListByOrderID(gomock.Any(), int64(1)).Return([]entities.Payment{}, nil)

		got, err := uc.ListPayments(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no payments, got %+v", got)
		}
	})
}
