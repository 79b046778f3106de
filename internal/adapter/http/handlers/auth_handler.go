package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	request "servitec/internal/adapter/http/dto/request"
	response "servitec/internal/adapter/http/dto/response"
	"servitec/internal/adapter/http/middleware"
	"servitec/internal/usecase"
	"servitec/internal/usecase/interfaces"
	"servitec/pkg"
)

var errInvalidAuthPayload = pkg.NewDomainErrorSimple("INVALID_AUTH_INPUT", "Invalid authentication payload", http.StatusBadRequest)

// AuthHandler handles staff token login and the client session lifecycle.

type AuthHandler struct {
	usecase          usecase.IAuthUseCase
	sessionMaxAgeSec int
}

func NewAuthHandler(uc usecase.IAuthUseCase, sessionMaxAgeSec int) *AuthHandler {
	return &AuthHandler{usecase: uc, sessionMaxAgeSec: sessionMaxAgeSec}
}

// StaffLogin exchanges staff credentials for a bearer token.
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var payload request.StaffLoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	token, staff, err := h.usecase.StaffLogin(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Printf("[auth][handler] staff login failed email=%s err=%v", payload.Email, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[auth][handler] staff login success staff_id=%d", staff.ID)

	c.JSON(http.StatusOK, response.StaffLoginResponse{
		Token: token,
		Staff: response.FromStaff(staff),
	})
}

// RegisterStaff creates a staff account. The route is gated to
// administrators.
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var payload request.StaffRegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	staff, err := h.usecase.RegisterStaff(c.Request.Context(), payload.Email, payload.FullName, payload.Password, payload.Roles)
	if err != nil {
		log.Printf("[auth][handler] staff register failed email=%s err=%v", payload.Email, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[auth][handler] staff register success staff_id=%d", staff.ID)

	c.JSON(http.StatusCreated, response.FromStaff(staff))
}

// RegisterClient creates a client account.
func (h *AuthHandler) RegisterClient(c *gin.Context) {
	var payload request.ClientRegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.RegisterClient(c.Request.Context(), payload.Email, payload.FullName, payload.Phone, payload.Password)
	if err != nil {
		log.Printf("[auth][handler] client register failed email=%s err=%v", payload.Email, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[auth][handler] client register success client_id=%d", client.ID)

	c.JSON(http.StatusCreated, response.FromClient(client))
}

// ClientLogin verifies credentials and sets the session cookie.
func (h *AuthHandler) ClientLogin(c *gin.Context) {
	var payload request.ClientLoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	sessionID, client, err := h.usecase.ClientLogin(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Printf("[auth][handler] client login failed email=%s err=%v", payload.Email, err)
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[auth][handler] client login success client_id=%d", client.ID)

	c.SetCookie(middleware.SessionCookieName, sessionID, h.sessionMaxAgeSec, "/", "", false, true)
	c.JSON(http.StatusOK, response.FromClient(client))
}

// ClientLogout deletes the server-side session and clears the cookie.
// Logging out without a cookie is a no-op, not an error.
func (h *AuthHandler) ClientLogout(c *gin.Context) {
	sessionID, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.usecase.ClientLogout(c.Request.Context(), sessionID); err != nil {
			log.Printf("[auth][handler] client logout failed err=%v", err)
			appErr := mapAuthError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrStaffInactive):
		return pkg.NewDomainErrorSimple("ACCOUNT_INACTIVE", "Account is deactivated", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidRegistration):
		return pkg.NewDomainErrorSimple("INVALID_REGISTRATION", "Invalid registration data", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownRole):
		return pkg.NewDomainErrorSimple("UNKNOWN_ROLE", "Unknown staff role", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmailTaken), errors.Is(err, interfaces.ErrEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_TAKEN", "Email already registered", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
