package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"servitec/internal/auth"
	"servitec/internal/domain/entities"
	"servitec/internal/usecase/interfaces"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrStaffInactive       = errors.New("staff account is inactive")
	ErrInvalidRegistration = errors.New("invalid registration payload")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUnknownRole         = errors.New("unknown staff role")
)

const (
	counterScopeClientID = "client_id"
	counterScopeStaffID  = "staff_id"
)

// IAuthUseCase exposes the authentication operations: staff log in with
// credentials and receive a bearer token with their roles embedded at
// issuance; clients register and log in through server-side sessions.
type IAuthUseCase interface {
	StaffLogin(ctx context.Context, email, password string) (string, entities.Staff, error)
	RegisterStaff(ctx context.Context, email, fullName, password string, roles []string) (entities.Staff, error)
	RegisterClient(ctx context.Context, email, fullName, phone, password string) (entities.Client, error)
	ClientLogin(ctx context.Context, email, password string) (string, entities.Client, error)
	ClientLogout(ctx context.Context, sessionID string) error
}

type AuthUseCase struct {
	staff      interfaces.IStaffRepository
	clients    interfaces.IClientRepository
	counters   interfaces.ICounterRepository
	sessions   interfaces.ISessionStore
	tokens     *auth.TokenManager
	sessionTTL time.Duration
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(
	staff interfaces.IStaffRepository,
	clients interfaces.IClientRepository,
	counters interfaces.ICounterRepository,
	sessions interfaces.ISessionStore,
	tokens *auth.TokenManager,
	sessionTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		staff:      staff,
		clients:    clients,
		counters:   counters,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// StaffLogin verifies credentials and issues a bearer token that snapshots
// the staff member's current roles.
func (u *AuthUseCase) StaffLogin(ctx context.Context, email, password string) (string, entities.Staff, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", entities.Staff{}, ErrInvalidCredentials
	}

	s, err := u.staff.GetByEmail(ctx, email)
	if err != nil {
		return "", entities.Staff{}, err
	}
	if s.ID == 0 {
		return "", entities.Staff{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(password, s.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", entities.Staff{}, ErrInvalidCredentials
		}
		return "", entities.Staff{}, err
	}
	if !s.Active {
		return "", entities.Staff{}, ErrStaffInactive
	}

	token, err := u.tokens.Generate(s.ID, auth.ParseRoles(s.Roles))
	if err != nil {
		return "", entities.Staff{}, err
	}
	log.Printf("[auth][usecase] staff login staff_id=%d roles=%v", s.ID, s.Roles)
	return token, s, nil
}

// RegisterStaff creates a staff account with a counter-allocated id. The
// routing layer restricts this operation to administrators. New accounts
// start active.
func (u *AuthUseCase) RegisterStaff(ctx context.Context, email, fullName, password string, roles []string) (entities.Staff, error) {
	email = normalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || fullName == "" || len(roles) == 0 {
		return entities.Staff{}, ErrInvalidRegistration
	}
	for _, r := range roles {
		if !auth.IsStaffRole(r) {
			return entities.Staff{}, ErrUnknownRole
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return entities.Staff{}, ErrInvalidRegistration
	}

	existing, err := u.staff.GetByEmail(ctx, email)
	if err != nil {
		return entities.Staff{}, err
	}
	if existing.ID != 0 {
		return entities.Staff{}, ErrEmailTaken
	}

	id, err := u.counters.Next(ctx, counterScopeStaffID)
	if err != nil {
		return entities.Staff{}, err
	}

	s := entities.Staff{
		ID:           id,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := u.staff.Create(ctx, s)
	if err != nil {
		if errors.Is(err, interfaces.ErrEmailTaken) {
			return entities.Staff{}, ErrEmailTaken
		}
		return entities.Staff{}, err
	}
	log.Printf("[auth][usecase] staff registered staff_id=%d roles=%v", created.ID, created.Roles)
	return created, nil
}

// RegisterClient creates a client account with a counter-allocated id.
func (u *AuthUseCase) RegisterClient(ctx context.Context, email, fullName, phone, password string) (entities.Client, error) {
	email = normalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || fullName == "" {
		return entities.Client{}, ErrInvalidRegistration
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return entities.Client{}, ErrInvalidRegistration
	}

	existing, err := u.clients.GetByEmail(ctx, email)
	if err != nil {
		return entities.Client{}, err
	}
	if existing.ID != 0 {
		return entities.Client{}, ErrEmailTaken
	}

	id, err := u.counters.Next(ctx, counterScopeClientID)
	if err != nil {
		return entities.Client{}, err
	}

	c := entities.Client{
		ID:           id,
		Email:        email,
		FullName:     fullName,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := u.clients.Create(ctx, c)
	if err != nil {
		if errors.Is(err, interfaces.ErrEmailTaken) {
			return entities.Client{}, ErrEmailTaken
		}
		return entities.Client{}, err
	}
	log.Printf("[auth][usecase] client registered client_id=%d", created.ID)
	return created, nil
}

// ClientLogin verifies credentials and opens a server-side session. The
// returned session id goes into an HttpOnly cookie; only the id crosses the
// wire.
func (u *AuthUseCase) ClientLogin(ctx context.Context, email, password string) (string, entities.Client, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", entities.Client{}, ErrInvalidCredentials
	}

	c, err := u.clients.GetByEmail(ctx, email)
	if err != nil {
		return "", entities.Client{}, err
	}
	if c.ID == 0 {
		return "", entities.Client{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(password, c.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", entities.Client{}, ErrInvalidCredentials
		}
		return "", entities.Client{}, err
	}

	sessionID, err := u.sessions.Create(ctx, c.ID, u.sessionTTL)
	if err != nil {
		return "", entities.Client{}, err
	}
	log.Printf("[auth][usecase] client session opened client_id=%d", c.ID)
	return sessionID, c, nil
}

func (u *AuthUseCase) ClientLogout(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	return u.sessions.Delete(ctx, sessionID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
