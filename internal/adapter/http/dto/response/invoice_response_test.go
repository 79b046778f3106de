package response

import (
	"strings"
	"testing"
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/usecase"
)

func TestFromGeneratedInvoice(t *testing.T) {
	now := time.Now().UTC()
	g := usecase.GeneratedInvoice{
		Invoice: entities.Invoice{
			OrderID:     1,
			Number:      "001-001-000000005",
			AccessKey:   strings.Repeat("1", 44),
			SubTotal:    100,
			Tax:         12,
			TotalAmount: 112,
			Status:      entities.InvoiceStatusIssued,
			IssuedAt:    now,
			UpdatedAt:   now,
		},
		XML: []byte("<invoice/>"),
	}

	res := FromGeneratedInvoice(g)
	if res.Invoice.Number != "001-001-000000005" || res.Invoice.Status != "issued" {
		t.Fatalf("unexpected invoice fields: %+v", res.Invoice)
	}
	if res.Invoice.SubTotal != 100 || res.Invoice.Tax != 12 || res.Invoice.TotalAmount != 112 {
		t.Fatalf("unexpected amounts: %+v", res.Invoice)
	}
	if res.XML != "<invoice/>" {
		t.Fatalf("unexpected xml: %q", res.XML)
	}
	if res.PDF != nil {
		t.Fatalf("expected no pdf, got %v", res.PDF)
	}
}

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:            "pay-1",
		OrderID:       1,
		InvoiceNumber: "001-001-000000005",
		Amount:        112,
		Date:          now,
		Status:        entities.PaymentStatusApproved,
	}

	res := FromPayment(p)
	if res.ID != "pay-1" || res.OrderID != 1 || res.Status != "approved" {
		t.Fatalf("unexpected payment fields: %+v", res)
	}
	if res.Amount != 112 || !res.Date.Equal(now) {
		t.Fatalf("unexpected amount or date: %+v", res)
	}
}
