package request

import (
	"errors"

	"servitec/internal/domain/entities"
)

var ErrInvalidQuoteTotal = errors.New("invalid quote total")

type CreateOrderRequest struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	EquipmentID int64  `json:"equipment_id" binding:"required"`
	Notes       string `json:"notes"`
}

type DiagnoseRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
}

type QuotePartRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity int     `json:"quantity" binding:"required"`
}

type QuoteRequest struct {
	Parts      []QuotePartRequest `json:"parts" binding:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price"`
}

// NotesRequest carries the optional note attached to a status change.
type NotesRequest struct {
	Notes string `json:"notes"`
}

func (r QuoteRequest) ToParts() []entities.OrderPart {
	parts := make([]entities.OrderPart, 0, len(r.Parts))
	for _, p := range r.Parts {
		parts = append(parts, entities.OrderPart{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}
	return parts
}

// ResolveTotal returns the explicit total when given, otherwise the sum of
// the line items. A non-positive result is rejected.
func (r QuoteRequest) ResolveTotal() (float64, error) {
	if r.TotalPrice > 0 {
		return r.TotalPrice, nil
	}

	total := 0.0
	for _, p := range r.Parts {
		if p.Price > 0 && p.Quantity > 0 {
			total += p.Price * float64(p.Quantity)
		}
	}
	if total <= 0 {
		return 0, ErrInvalidQuoteTotal
	}
	return total, nil
}
