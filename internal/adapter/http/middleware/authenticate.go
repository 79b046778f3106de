package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"servitec/internal/auth"
	"servitec/pkg"
)

// SessionCookieName is the cookie carrying the opaque client session id.
const SessionCookieName = "servitec_session"

const principalContextKey = "servitec-principal"

// Authenticate resolves the request's credentials into a Principal and
// aborts with 401 when that fails. A bearer token takes precedence over a
// session cookie when both are presented.
func Authenticate(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := auth.Credentials{
			BearerToken: bearerToken(c),
		}
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			creds.SessionID = cookie
		}

		principal, err := resolver.Resolve(c.Request.Context(), creds)
		if err != nil {
			appErr := mapResolveError(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// Require authorizes the resolved principal against a static requirement.
// Ownership-bound requirements are enforced in handlers after the resource
// is loaded; this middleware covers kind and role checks only.
func Require(req auth.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		if decision := auth.Authorize(principal, req); !decision.Allowed {
			appErr := DenyError(decision.Reason)
			log.Printf("[auth][middleware] denied kind=%s principal_id=%d reason=%s path=%s", principal.Kind, principal.ID, decision.Reason, c.FullPath())
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Next()
	}
}

// SetPrincipal stores the resolved principal on the request context.
func SetPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(principalContextKey, p)
}

// PrincipalFrom returns the Principal stored by Authenticate.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalContextKey)
	if !ok {
		return auth.Principal{}, false
	}
	principal, ok := v.(auth.Principal)
	return principal, ok
}

// DenyError maps a policy deny reason to the HTTP error body. Exported so
// handlers enforcing ownership after loading the resource produce the same
// responses as the middleware.
func DenyError(reason auth.DenyReason) *pkg.AppError {
	switch reason {
	case auth.DenyWrongPrincipalKind:
		return pkg.NewDomainErrorSimple("WRONG_PRINCIPAL_KIND", "Operation not available to this kind of account", http.StatusForbidden)
	case auth.DenyInsufficientRole:
		return pkg.NewDomainErrorSimple("INSUFFICIENT_ROLE", "Role not sufficient for this operation", http.StatusForbidden)
	case auth.DenyNotOwner:
		return pkg.NewDomainErrorSimple("NOT_OWNER", "Resource belongs to another client", http.StatusForbidden)
	default:
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Access denied", http.StatusForbidden)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("bearer "):])
}

func mapResolveError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrTokenExpired):
		return pkg.NewDomainErrorSimple("TOKEN_EXPIRED", "Token expired", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrTokenInvalid):
		return pkg.NewDomainErrorSimple("TOKEN_INVALID", "Token invalid", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrPrincipalInactive):
		return pkg.NewDomainErrorSimple("ACCOUNT_INACTIVE", "Account is deactivated", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrSessionInvalid):
		return pkg.NewDomainErrorSimple("SESSION_INVALID", "Session invalid or expired", http.StatusUnauthorized)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
