package interfaces

import (
	"context"

	"servitec/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for invoice payments.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]entities.Payment, error)
}
