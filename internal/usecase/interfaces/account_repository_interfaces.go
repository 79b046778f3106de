package interfaces

import (
	"context"
	"errors"
	"time"

	"servitec/internal/domain/entities"
)

// ErrEmailTaken is returned by Create when the account email marker already
// exists.
var ErrEmailTaken = errors.New("email already registered")

// IStaffRepository abstracts DynamoDB persistence for Staff accounts.
// Lookups return a zero-value entity when nothing matches.
type IStaffRepository interface {
	Create(ctx context.Context, s entities.Staff) (entities.Staff, error)
	GetByID(ctx context.Context, id int64) (entities.Staff, error)
	GetByEmail(ctx context.Context, email string) (entities.Staff, error)
	StaffActive(ctx context.Context, staffID int64) (bool, error)
}

// IClientRepository abstracts DynamoDB persistence for Client accounts.
type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id int64) (entities.Client, error)
	GetByEmail(ctx context.Context, email string) (entities.Client, error)
	ClientExists(ctx context.Context, clientID int64) (bool, error)
}

// ISessionStore abstracts the server-side client session store (Redis).
// Get returns auth.ErrSessionNotFound for unknown or expired sessions.
type ISessionStore interface {
	Create(ctx context.Context, clientID int64, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}
