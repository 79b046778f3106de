package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// Payment is an invoice payment processed through the external gateway.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI1 (order_id-index): order_id
//
// ProviderPayloadRaw keeps the gateway response body for traceability; the
// parsed map is persisted alongside because provider schemas vary between
// integrations.
type Payment struct {
	ID            string        `json:"id"`
	OrderID       int64         `json:"order_id"`
	InvoiceNumber string        `json:"invoice_number"`
	Amount        float64       `json:"amount"`
	Date          time.Time     `json:"date"`
	Status        PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
