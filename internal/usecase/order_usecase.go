package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/usecase/interfaces"
)

var (
	ErrOrderNotFound     = errors.New("service order not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidOrderInput = errors.New("invalid order input")
)

const counterScopeOrderID = "order_id"

// transitionAttempts bounds the read-validate-write loop. A conditional
// failure means the order moved concurrently; the loop re-reads so the
// legality check always runs against fresh state.
const transitionAttempts = 3

// CreateOrderInput carries the reception-desk intake data.
type CreateOrderInput struct {
	ClientID       int64
	EquipmentID    int64
	ReceptionistID int64
	Notes          string
}

// IOrderUseCase exposes the service-order workflow. Every state-changing
// operation validates the move against the lifecycle table and records
// exactly one history entry; authorization happens at the HTTP call site,
// never in here.
type IOrderUseCase interface {
	Create(ctx context.Context, in CreateOrderInput) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id int64) (entities.ServiceOrder, error)
	ListByClientID(ctx context.Context, clientID int64) ([]entities.ServiceOrder, error)
	History(ctx context.Context, orderID int64) ([]entities.OrderStatusHistory, error)

	Diagnose(ctx context.Context, orderID, technicianID int64, diagnosis string) (entities.ServiceOrder, error)
	SetQuote(ctx context.Context, orderID int64, parts []entities.OrderPart, totalPrice float64) (entities.ServiceOrder, error)
	SendProforma(ctx context.Context, orderID int64, actorID int64, notes string) (entities.ServiceOrder, error)
	ApproveProforma(ctx context.Context, orderID int64, notes string) (entities.ServiceOrder, error)
	RejectProforma(ctx context.Context, orderID int64, notes string) (entities.ServiceOrder, error)
	Requote(ctx context.Context, orderID int64, actorID int64, notes string) (entities.ServiceOrder, error)
	StartRepair(ctx context.Context, orderID int64, actorID int64) (entities.ServiceOrder, error)
	CompleteRepair(ctx context.Context, orderID int64, actorID int64, notes string) (entities.ServiceOrder, error)
	Deliver(ctx context.Context, orderID int64, actorID int64) (entities.ServiceOrder, error)
}

type OrderUseCase struct {
	orders   interfaces.IServiceOrderRepository
	clients  interfaces.IClientRepository
	counters interfaces.ICounterRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(orders interfaces.IServiceOrderRepository, clients interfaces.IClientRepository, counters interfaces.ICounterRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, clients: clients, counters: counters}
}

// Create opens a service order in the received state. The id comes from the
// counters table and the human-facing tag is derived from it, so tags are
// never reused.
func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (entities.ServiceOrder, error) {
	if in.ClientID <= 0 || in.EquipmentID <= 0 || in.ReceptionistID <= 0 {
		return entities.ServiceOrder{}, ErrInvalidOrderInput
	}

	exists, err := u.clients.ClientExists(ctx, in.ClientID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if !exists {
		return entities.ServiceOrder{}, ErrClientNotFound
	}

	id, err := u.counters.Next(ctx, counterScopeOrderID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := time.Now().UTC()
	o := entities.ServiceOrder{
		ID:             id,
		Tag:            fmt.Sprintf("OS-%d-%06d", now.Year(), id),
		Status:         entities.StatusReceived,
		ProformaStatus: entities.ProformaNone,
		ClientID:       in.ClientID,
		EquipmentID:    in.EquipmentID,
		ReceptionistID: in.ReceptionistID,
		Notes:          strings.TrimSpace(in.Notes),
		HistorySeq:     1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[order][usecase] created order_id=%d tag=%s client_id=%d", created.ID, created.Tag, created.ClientID)
	return created, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id int64) (entities.ServiceOrder, error) {
	if id <= 0 {
		return entities.ServiceOrder{}, ErrInvalidOrderInput
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == 0 {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) ListByClientID(ctx context.Context, clientID int64) ([]entities.ServiceOrder, error) {
	if clientID <= 0 {
		return nil, ErrInvalidOrderInput
	}
	return u.orders.ListByClientID(ctx, clientID)
}

func (u *OrderUseCase) History(ctx context.Context, orderID int64) ([]entities.OrderStatusHistory, error) {
	if _, err := u.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.orders.ListHistory(ctx, orderID)
}

// Diagnose records the technician's findings and moves the order to
// diagnosed, assigning the technician in the same transaction.
func (u *OrderUseCase) Diagnose(ctx context.Context, orderID, technicianID int64, diagnosis string) (entities.ServiceOrder, error) {
	diagnosis = strings.TrimSpace(diagnosis)
	if diagnosis == "" || technicianID <= 0 {
		return entities.ServiceOrder{}, ErrInvalidOrderInput
	}
	return u.transition(ctx, orderID, entities.StatusDiagnosed, &technicianID, "diagnosis recorded", func(cmd *interfaces.TransitionCommand) {
		cmd.Diagnosis = &diagnosis
		cmd.Technician = &technicianID
	})
}

// SetQuote writes parts and total price. It is not a status transition;
// the fields are only writable while the order sits in diagnosed.
func (u *OrderUseCase) SetQuote(ctx context.Context, orderID int64, parts []entities.OrderPart, totalPrice float64) (entities.ServiceOrder, error) {
	if len(parts) == 0 || totalPrice <= 0 {
		return entities.ServiceOrder{}, ErrInvalidOrderInput
	}
	o, err := u.GetByID(ctx, orderID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.Status != entities.StatusDiagnosed {
		return entities.ServiceOrder{}, fmt.Errorf("%w: quote is only writable on %s orders", entities.ErrPreconditionFailed, entities.StatusDiagnosed)
	}
	return u.orders.UpdateQuote(ctx, orderID, parts, totalPrice)
}

func (u *OrderUseCase) SendProforma(ctx context.Context, orderID int64, actorID int64, notes string) (entities.ServiceOrder, error) {
	return u.transition(ctx, orderID, entities.StatusProformaSent, &actorID, defaultNotes(notes, "proforma sent to client"), nil)
}

// ApproveProforma and RejectProforma are client-originated: the history
// entry carries no staff principal id.
func (u *OrderUseCase) ApproveProforma(ctx context.Context, orderID int64, notes string) (entities.ServiceOrder, error) {
	return u.transition(ctx, orderID, entities.StatusProformaApproved, nil, defaultNotes(notes, "proforma approved by client"), nil)
}

func (u *OrderUseCase) RejectProforma(ctx context.Context, orderID int64, notes string) (entities.ServiceOrder, error) {
	return u.transition(ctx, orderID, entities.StatusProformaRejected, nil, defaultNotes(notes, "proforma rejected by client"), nil)
}

// Requote is the explicit way back from a rejected proforma: the order
// re-enters diagnosed with its quote cleared. Deliberately not a bare
// transition in the lifecycle table.
func (u *OrderUseCase) Requote(ctx context.Context, orderID int64, actorID int64, notes string) (entities.ServiceOrder, error) {
	for attempt := 1; ; attempt++ {
		o, err := u.GetByID(ctx, orderID)
		if err != nil {
			return entities.ServiceOrder{}, err
		}
		if err := entities.ValidateRequote(o); err != nil {
			return entities.ServiceOrder{}, err
		}

		cmd := interfaces.TransitionCommand{
			OrderID:            orderID,
			From:               entities.StatusProformaRejected,
			To:                 entities.StatusDiagnosed,
			ProformaStatus:     entities.ProformaNone,
			ExpectedHistorySeq: o.HistorySeq,
			ClearQuote:         true,
			Notes:              defaultNotes(notes, "re-quote opened"),
			ChangedBy:          &actorID,
		}
		updated, err := u.orders.TransitionStatus(ctx, cmd)
		if errors.Is(err, interfaces.ErrStatusConflict) && attempt < transitionAttempts {
			log.Printf("[order][usecase] requote conflict order_id=%d attempt=%d", orderID, attempt)
			continue
		}
		if err != nil {
			return entities.ServiceOrder{}, err
		}
		return updated, nil
	}
}

func (u *OrderUseCase) StartRepair(ctx context.Context, orderID int64, actorID int64) (entities.ServiceOrder, error) {
	return u.transition(ctx, orderID, entities.StatusInProgress, &actorID, "repair started", nil)
}

func (u *OrderUseCase) CompleteRepair(ctx context.Context, orderID int64, actorID int64, notes string) (entities.ServiceOrder, error) {
	return u.transition(ctx, orderID, entities.StatusCompleted, &actorID, defaultNotes(notes, "repair completed"), nil)
}

func (u *OrderUseCase) Deliver(ctx context.Context, orderID int64, actorID int64) (entities.ServiceOrder, error) {
	return u.transition(ctx, orderID, entities.StatusDelivered, &actorID, "equipment delivered", nil)
}

// transition runs the read-validate-write loop for a lifecycle move. The
// conditional write in the repository is what closes the race between two
// concurrent transitions on the same order: the loser re-reads and
// re-validates against the winner's state, so an illegal move is always
// rejected, never silently applied.
func (u *OrderUseCase) transition(
	ctx context.Context,
	orderID int64,
	to entities.OrderStatus,
	changedBy *int64,
	notes string,
	customize func(cmd *interfaces.TransitionCommand),
) (entities.ServiceOrder, error) {
	for attempt := 1; ; attempt++ {
		o, err := u.GetByID(ctx, orderID)
		if err != nil {
			return entities.ServiceOrder{}, err
		}
		if err := entities.ValidateTransition(o, to); err != nil {
			return entities.ServiceOrder{}, err
		}

		cmd := interfaces.TransitionCommand{
			OrderID:            orderID,
			From:               o.Status,
			To:                 to,
			ProformaStatus:     entities.ProformaStatusAfter(o.ProformaStatus, to),
			ExpectedHistorySeq: o.HistorySeq,
			Notes:              notes,
			ChangedBy:          changedBy,
		}
		if customize != nil {
			customize(&cmd)
		}

		updated, err := u.orders.TransitionStatus(ctx, cmd)
		if errors.Is(err, interfaces.ErrStatusConflict) && attempt < transitionAttempts {
			log.Printf("[order][usecase] transition conflict order_id=%d target=%s attempt=%d", orderID, to, attempt)
			continue
		}
		if err != nil {
			return entities.ServiceOrder{}, err
		}
		log.Printf("[order][usecase] transition order_id=%d %s -> %s", orderID, cmd.From, cmd.To)
		return updated, nil
	}
}

func defaultNotes(notes, fallback string) string {
	if n := strings.TrimSpace(notes); n != "" {
		return n
	}
	return fallback
}
