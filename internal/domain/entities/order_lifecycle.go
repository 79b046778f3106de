package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTransition means the target status is not a direct successor
	// of the order's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrPreconditionFailed means the target is adjacent but a state-specific
	// guard does not hold yet.
	ErrPreconditionFailed = errors.New("transition precondition failed")
)

// orderTransitions is the explicit adjacency table of the order lifecycle.
// StatusProformaRejected and StatusDelivered have no successors here:
// Delivered is terminal and a rejected proforma only re-enters Diagnosed
// through the dedicated re-quote action (see Requote below).
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusReceived:         {StatusDiagnosed},
	StatusDiagnosed:        {StatusProformaSent},
	StatusProformaSent:     {StatusProformaApproved, StatusProformaRejected},
	StatusProformaApproved: {StatusInProgress},
	StatusProformaRejected: {},
	StatusInProgress:       {StatusCompleted},
	StatusCompleted:        {StatusInvoiced},
	StatusInvoiced:         {StatusDelivered},
	StatusDelivered:        {},
}

// transitionGuards holds the per-target preconditions that must hold beyond
// adjacency. Missing entry means adjacency alone is enough.
var transitionGuards = map[OrderStatus]func(o ServiceOrder) error{
	StatusProformaSent: func(o ServiceOrder) error {
		if len(o.Parts) == 0 || o.TotalPrice <= 0 {
			return fmt.Errorf("%w: proforma requires parts and a total price", ErrPreconditionFailed)
		}
		return nil
	},
	StatusInvoiced: func(o ServiceOrder) error {
		if o.ProformaStatus != ProformaApproved {
			return fmt.Errorf("%w: invoicing requires an approved proforma", ErrPreconditionFailed)
		}
		return nil
	},
}

// CanTransition reports whether target is a direct successor of from in the
// lifecycle graph. It ignores guards.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition checks graph adjacency and the target's guard against
// the order's current state. It is a pure function: authorization is the
// caller's concern.
func ValidateTransition(o ServiceOrder, to OrderStatus) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, to)
	}
	if guard, ok := transitionGuards[to]; ok {
		if err := guard(o); err != nil {
			return err
		}
	}
	return nil
}

// ProformaStatusAfter returns the proforma sub-state implied by entering the
// target status, or the current sub-state when the transition does not touch
// the proforma.
func ProformaStatusAfter(current ProformaStatus, target OrderStatus) ProformaStatus {
	switch target {
	case StatusProformaSent:
		return ProformaSent
	case StatusProformaApproved:
		return ProformaApproved
	case StatusProformaRejected:
		return ProformaRejected
	default:
		return current
	}
}

// ValidateRequote checks the explicit re-quote action, which is the only way
// back from a rejected proforma. It is deliberately not part of the
// adjacency table.
func ValidateRequote(o ServiceOrder) error {
	if o.Status != StatusProformaRejected {
		return fmt.Errorf("%w: re-quote only applies to %s orders", ErrIllegalTransition, StatusProformaRejected)
	}
	return nil
}
