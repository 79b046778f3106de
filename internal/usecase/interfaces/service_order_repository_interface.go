package interfaces

import (
	"context"
	"errors"

	"servitec/internal/domain/entities"
)

// ErrStatusConflict is returned by TransitionStatus when the order's status
// or history sequence moved between the caller's read and the conditional
// write. The caller re-reads and re-validates; it must never blind-retry the
// same expected state.
var ErrStatusConflict = errors.New("order status changed concurrently")

// TransitionCommand is one atomic status move. The repository applies the
// status update and the history append in a single transaction conditioned
// on From and ExpectedHistorySeq; if either condition fails nothing is
// written and ErrStatusConflict is returned.
type TransitionCommand struct {
	OrderID            int64
	From               entities.OrderStatus
	To                 entities.OrderStatus
	ProformaStatus     entities.ProformaStatus
	ExpectedHistorySeq int64

	// Optional field writes applied in the same transaction.
	Diagnosis  *string
	Technician *int64
	ClearQuote bool

	Notes     string
	ChangedBy *int64
}

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder
// and its append-only status history.
type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id int64) (entities.ServiceOrder, error)
	ListByClientID(ctx context.Context, clientID int64) ([]entities.ServiceOrder, error)
	UpdateQuote(ctx context.Context, id int64, parts []entities.OrderPart, totalPrice float64) (entities.ServiceOrder, error)
	TransitionStatus(ctx context.Context, cmd TransitionCommand) (entities.ServiceOrder, error)
	ListHistory(ctx context.Context, orderID int64) ([]entities.OrderStatusHistory, error)
}
