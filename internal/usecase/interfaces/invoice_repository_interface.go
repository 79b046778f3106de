package interfaces

import (
	"context"
	"errors"

	"servitec/internal/domain/entities"
)

var (
	// ErrInvoiceExists means an invoice was already issued for the order.
	ErrInvoiceExists = errors.New("invoice already exists for order")
	// ErrNumberTaken means the uniqueness marker for the invoice number hit a
	// concurrent writer. Re-allocating a fresh sequence and retrying is safe.
	ErrNumberTaken = errors.New("invoice number already taken")
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice. Create must
// write the invoice and its number-uniqueness marker transactionally.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByOrderID(ctx context.Context, orderID int64) (entities.Invoice, error)
	MarkPaid(ctx context.Context, orderID int64) (entities.Invoice, error)
}

// ICounterRepository hands out strictly increasing sequence values per named
// scope through an atomic store-side increment. Used for client/staff/order
// ids, order tags and invoice sequences.
type ICounterRepository interface {
	Next(ctx context.Context, scope string) (int64, error)
}
