package entities

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{StatusReceived, StatusDiagnosed},
		{StatusDiagnosed, StatusProformaSent},
		{StatusProformaSent, StatusProformaApproved},
		{StatusProformaSent, StatusProformaRejected},
		{StatusProformaApproved, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusCompleted, StatusInvoiced},
		{StatusInvoiced, StatusDelivered},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{StatusReceived, StatusProformaSent},
		{StatusReceived, StatusDelivered},
		{StatusDiagnosed, StatusInProgress},
		{StatusProformaRejected, StatusDiagnosed},
		{StatusProformaRejected, StatusProformaSent},
		{StatusDelivered, StatusReceived},
		{StatusInvoiced, StatusCompleted},
		{StatusCompleted, StatusDelivered},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	t.Run("non-adjacent target", func(t *testing.T) {
		o := ServiceOrder{Status: StatusReceived}
		err := ValidateTransition(o, StatusInProgress)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("proforma without quote", func(t *testing.T) {
		o := ServiceOrder{Status: StatusDiagnosed}
		err := ValidateTransition(o, StatusProformaSent)
		if !errors.Is(err, ErrPreconditionFailed) {
			t.Fatalf("expected ErrPreconditionFailed, got %v", err)
		}
	})

	t.Run("proforma with quote", func(t *testing.T) {
		o := ServiceOrder{
			Status:     StatusDiagnosed,
			Parts:      []OrderPart{{Name: "screen", Price: 120, Quantity: 1}},
			TotalPrice: 120,
		}
		if err := ValidateTransition(o, StatusProformaSent); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invoicing without approved proforma", func(t *testing.T) {
		o := ServiceOrder{Status: StatusCompleted, ProformaStatus: ProformaSent}
		err := ValidateTransition(o, StatusInvoiced)
		if !errors.Is(err, ErrPreconditionFailed) {
			t.Fatalf("expected ErrPreconditionFailed, got %v", err)
		}
	})

	t.Run("invoicing with approved proforma", func(t *testing.T) {
		o := ServiceOrder{Status: StatusCompleted, ProformaStatus: ProformaApproved}
		if err := ValidateTransition(o, StatusInvoiced); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		o := ServiceOrder{Status: StatusDelivered}
		for _, target := range []OrderStatus{StatusReceived, StatusDiagnosed, StatusInProgress, StatusInvoiced} {
			if err := ValidateTransition(o, target); !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("expected ErrIllegalTransition for delivered -> %s, got %v", target, err)
			}
		}
	})
}

func TestProformaStatusAfter(t *testing.T) {
	if got := ProformaStatusAfter(ProformaNone, StatusProformaSent); got != ProformaSent {
		t.Errorf("expected %s, got %s", ProformaSent, got)
	}
	if got := ProformaStatusAfter(ProformaSent, StatusProformaApproved); got != ProformaApproved {
		t.Errorf("expected %s, got %s", ProformaApproved, got)
	}
	if got := ProformaStatusAfter(ProformaSent, StatusProformaRejected); got != ProformaRejected {
		t.Errorf("expected %s, got %s", ProformaRejected, got)
	}
	// Transitions outside the proforma phase keep the sub-state.
	if got := ProformaStatusAfter(ProformaApproved, StatusInProgress); got != ProformaApproved {
		t.Errorf("expected %s, got %s", ProformaApproved, got)
	}
	if got := ProformaStatusAfter(ProformaApproved, StatusDelivered); got != ProformaApproved {
		t.Errorf("expected %s, got %s", ProformaApproved, got)
	}
}

func TestValidateRequote(t *testing.T) {
	if err := ValidateRequote(ServiceOrder{Status: StatusProformaRejected}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, status := range []OrderStatus{StatusReceived, StatusDiagnosed, StatusProformaSent, StatusProformaApproved, StatusDelivered} {
		if err := ValidateRequote(ServiceOrder{Status: status}); !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("expected ErrIllegalTransition for %s, got %v", status, err)
		}
	}
}
