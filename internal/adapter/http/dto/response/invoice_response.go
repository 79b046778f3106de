package response

import (
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/usecase"
)

type InvoiceResponse struct {
	OrderID     int64     `json:"order_id"`
	Number      string    `json:"number"`
	AccessKey   string    `json:"access_key"`
	SubTotal    float64   `json:"sub_total"`
	Tax         float64   `json:"tax"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	IssuedAt    time.Time `json:"issued_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		OrderID:     inv.OrderID,
		Number:      inv.Number,
		AccessKey:   inv.AccessKey,
		SubTotal:    inv.SubTotal,
		Tax:         inv.Tax,
		TotalAmount: inv.TotalAmount,
		Status:      string(inv.Status),
		IssuedAt:    inv.IssuedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// GeneratedInvoiceResponse carries the issued invoice next to its rendered
// documents. XML is always present; PDF is omitted when no renderer backend
// is configured.
type GeneratedInvoiceResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	XML     string          `json:"xml"`
	PDF     []byte          `json:"pdf,omitempty"`
}

func FromGeneratedInvoice(g usecase.GeneratedInvoice) GeneratedInvoiceResponse {
	return GeneratedInvoiceResponse{
		Invoice: FromInvoice(g.Invoice),
		XML:     string(g.XML),
		PDF:     g.PDF,
	}
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	OrderID       int64     `json:"order_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		InvoiceNumber: p.InvoiceNumber,
		Amount:        p.Amount,
		Date:          p.Date,
		Status:        string(p.Status),
	}
}
