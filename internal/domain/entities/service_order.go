package entities

import "time"

// OrderStatus represents the lifecycle state of a service order.
//
// Domain notes:
//   - Transitions are validated against the adjacency table in
//     order_lifecycle.go, never with ad hoc checks in handlers.
//   - StatusProformaRejected is a dead end: the order only re-enters
//     StatusDiagnosed through the explicit re-quote action.
type OrderStatus string

const (
	StatusReceived         OrderStatus = "received"
	StatusDiagnosed        OrderStatus = "diagnosed"
	StatusProformaSent     OrderStatus = "proforma_sent"
	StatusProformaApproved OrderStatus = "proforma_approved"
	StatusProformaRejected OrderStatus = "proforma_rejected"
	StatusInProgress       OrderStatus = "in_progress"
	StatusCompleted        OrderStatus = "completed"
	StatusInvoiced         OrderStatus = "invoiced"
	StatusDelivered        OrderStatus = "delivered"
)

// ProformaStatus tracks the quote sub-state, orthogonal to OrderStatus but
// constrained by the lifecycle guards.
type ProformaStatus string

const (
	ProformaNone      ProformaStatus = "none"
	ProformaGenerated ProformaStatus = "generated"
	ProformaSent      ProformaStatus = "sent"
	ProformaApproved  ProformaStatus = "approved"
	ProformaRejected  ProformaStatus = "rejected"
)

// OrderPart is one quoted part or supply on a service order.
type OrderPart struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ServiceOrder is the unit of workflow persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (number, allocated from the counters table)
//   - Tag is the human-facing identifier, assigned once and never reused.
//   - HistorySeq is the sequence of the latest order_status_history row; it
//     is bumped inside the same transaction that moves Status, so the most
//     recent history entry always matches Status.
type ServiceOrder struct {
	ID             int64          `json:"id"`
	Tag            string         `json:"tag"`
	Status         OrderStatus    `json:"status"`
	ProformaStatus ProformaStatus `json:"proforma_status"`
	ClientID       int64          `json:"client_id"`
	EquipmentID    int64          `json:"equipment_id"`
	ReceptionistID int64          `json:"receptionist_id"`
	TechnicianID   *int64         `json:"technician_id,omitempty"`
	Diagnosis      string         `json:"diagnosis,omitempty"`
	Parts          []OrderPart    `json:"parts,omitempty"`
	TotalPrice     float64        `json:"total_price"`
	Notes          string         `json:"notes,omitempty"`
	HistorySeq     int64          `json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// OrderStatusHistory is one append-only ledger entry. ChangedBy is nil for
// client-originated or system-originated changes.
type OrderStatusHistory struct {
	OrderID   int64       `json:"order_id"`
	Seq       int64       `json:"seq"`
	Status    OrderStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	ChangedBy *int64      `json:"changed_by,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
