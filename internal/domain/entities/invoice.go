package entities

import "time"

// InvoiceStatus represents the billing outcome of an issued invoice.
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// Invoice is the fiscal document issued when an order is invoiced.
//
// Storage model (DynamoDB):
//   - PK: order_id (number). Keying by order id guarantees at most one
//     invoice per order; a number#<invoice_number> marker item written in the
//     same transaction backstops number uniqueness.
//
// Number is the sequential EEE-PPP-SSSSSSSSS identifier; AccessKey is the
// 44-digit fiscal key whose last digit is a mod-11 check digit. Both are
// produced by the fiscal package and never recomputed after issuance.
type Invoice struct {
	OrderID     int64         `json:"order_id"`
	Number      string        `json:"number"`
	AccessKey   string        `json:"access_key"`
	SubTotal    float64       `json:"sub_total"`
	Tax         float64       `json:"tax"`
	TotalAmount float64       `json:"total_amount"`
	Status      InvoiceStatus `json:"status"`
	IssuedAt    time.Time     `json:"issued_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
