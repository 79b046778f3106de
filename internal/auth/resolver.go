package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrUnauthenticated   = errors.New("no credentials presented")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrPrincipalInactive = errors.New("staff principal inactive")
	ErrSessionInvalid    = errors.New("session invalid")
)

// StaffDirectory is the read-only staff lookup the resolver needs to
// re-check that a token's subject is still active. Roles are NOT taken from
// here on resolution; they come from the token claims.
type StaffDirectory interface {
	StaffActive(ctx context.Context, staffID int64) (bool, error)
}

// ClientDirectory is the read-only client lookup backing session resolution.
type ClientDirectory interface {
	ClientExists(ctx context.Context, clientID int64) (bool, error)
}

// SessionStore resolves opaque session identifiers to client ids.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

// ErrSessionNotFound is what SessionStore implementations return for an
// unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// Credentials are the opaque carriers handed over by the routing layer.
type Credentials struct {
	// BearerToken is the Authorization header value, with or without the
	// "Bearer " prefix.
	BearerToken string
	// SessionID is the value of the session cookie, if any.
	SessionID string
}

// Resolver turns request credentials into a Principal. A bearer token wins
// over a session when both are present.
type Resolver struct {
	tokens   *TokenManager
	sessions SessionStore
	staff    StaffDirectory
	clients  ClientDirectory
}

func NewResolver(tokens *TokenManager, sessions SessionStore, staff StaffDirectory, clients ClientDirectory) *Resolver {
	return &Resolver{tokens: tokens, sessions: sessions, staff: staff, clients: clients}
}

// Resolve validates the presented credentials and builds the Principal.
// It never mutates the token; the only session mutation is invalidation of a
// session whose client no longer exists.
func (r *Resolver) Resolve(ctx context.Context, creds Credentials) (Principal, error) {
	if token := strings.TrimSpace(creds.BearerToken); token != "" {
		return r.resolveToken(ctx, token)
	}
	if sessionID := strings.TrimSpace(creds.SessionID); sessionID != "" {
		return r.resolveSession(ctx, sessionID)
	}
	return Principal{}, ErrUnauthenticated
}

func (r *Resolver) resolveToken(ctx context.Context, token string) (Principal, error) {
	token = strings.TrimPrefix(token, "Bearer ")

	claims, err := r.tokens.Validate(token)
	if err != nil {
		return Principal{}, err
	}

	// Token validity and staff activity are separately revocable: an expired
	// token and a deactivated employee are distinct failures.
	active, err := r.staff.StaffActive(ctx, claims.StaffID)
	if err != nil {
		return Principal{}, fmt.Errorf("staff activity check: %w", err)
	}
	if !active {
		return Principal{}, ErrPrincipalInactive
	}

	return Principal{
		Kind:       KindStaff,
		ID:         claims.StaffID,
		Roles:      ParseRoles(claims.Roles),
		AuthMethod: MethodToken,
	}, nil
}

func (r *Resolver) resolveSession(ctx context.Context, sessionID string) (Principal, error) {
	clientID, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Principal{}, ErrSessionInvalid
		}
		return Principal{}, fmt.Errorf("session lookup: %w", err)
	}

	exists, err := r.clients.ClientExists(ctx, clientID)
	if err != nil {
		return Principal{}, fmt.Errorf("client lookup: %w", err)
	}
	if !exists {
		if delErr := r.sessions.Delete(ctx, sessionID); delErr != nil {
			log.Printf("[auth][resolver] failed invalidating orphan session err=%v", delErr)
		}
		return Principal{}, ErrSessionInvalid
	}

	return Principal{
		Kind:       KindClient,
		ID:         clientID,
		Roles:      []Role{RoleClient},
		AuthMethod: MethodSession,
	}, nil
}
