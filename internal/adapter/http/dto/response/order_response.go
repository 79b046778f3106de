package response

import (
	"time"

	"servitec/internal/domain/entities"
)

type OrderPartResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type ServiceOrderResponse struct {
	ID             int64               `json:"id"`
	Tag            string              `json:"tag"`
	Status         string              `json:"status"`
	ProformaStatus string              `json:"proforma_status"`
	ClientID       int64               `json:"client_id"`
	EquipmentID    int64               `json:"equipment_id"`
	ReceptionistID int64               `json:"receptionist_id"`
	TechnicianID   *int64              `json:"technician_id,omitempty"`
	Diagnosis      string              `json:"diagnosis,omitempty"`
	Parts          []OrderPartResponse `json:"parts,omitempty"`
	TotalPrice     float64             `json:"total_price"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	resp := ServiceOrderResponse{
		ID:             o.ID,
		Tag:            o.Tag,
		Status:         string(o.Status),
		ProformaStatus: string(o.ProformaStatus),
		ClientID:       o.ClientID,
		EquipmentID:    o.EquipmentID,
		ReceptionistID: o.ReceptionistID,
		TechnicianID:   o.TechnicianID,
		Diagnosis:      o.Diagnosis,
		TotalPrice:     o.TotalPrice,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, p := range o.Parts {
		resp.Parts = append(resp.Parts, OrderPartResponse{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}
	return resp
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromServiceOrder(o))
	}
	return out
}

type OrderHistoryEntryResponse struct {
	Seq       int64     `json:"seq"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	ChangedBy *int64    `json:"changed_by,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func FromOrderHistory(entries []entities.OrderStatusHistory) []OrderHistoryEntryResponse {
	out := make([]OrderHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, OrderHistoryEntryResponse{
			Seq:       e.Seq,
			Status:    string(e.Status),
			Notes:     e.Notes,
			ChangedBy: e.ChangedBy,
			Timestamp: e.Timestamp,
		})
	}
	return out
}
