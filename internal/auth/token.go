package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "servitec-api"
	tokenAudience = "servitec"
)

// Claims are the staff token claims. Roles are snapshotted at issuance:
// a role change at the store only takes effect after re-authentication.
type Claims struct {
	StaffID int64    `json:"staff_id"`
	Roles   []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies staff bearer tokens (HS256).
type TokenManager struct {
	secretKey []byte
	expiresIn time.Duration
}

func NewTokenManager(secretKey string, expiresIn time.Duration) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey), expiresIn: expiresIn}
}

// Generate issues a signed token for a staff member with the roles they
// hold right now.
func (m *TokenManager) Generate(staffID int64, roles []Role) (string, error) {
	now := time.Now()
	claims := Claims{
		StaffID: staffID,
		Roles:   RoleNames(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   strconv.FormatInt(staffID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature, issuer and audience and returns the claims.
// Expiry is reported as ErrTokenExpired, anything else as ErrTokenInvalid.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
