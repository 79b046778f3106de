package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := manager.Generate(42, []Role{RoleTechnician, RoleSales})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.StaffID != 42 {
			t.Fatalf("expected staff id 42, got %d", claims.StaffID)
		}
		if len(claims.Roles) != 2 || claims.Roles[0] != "technician" || claims.Roles[1] != "sales" {
			t.Fatalf("unexpected roles: %v", claims.Roles)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Generate(42, []Role{RoleTechnician})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := manager.Validate(token); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		token, err := other.Generate(42, []Role{RoleTechnician})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := manager.Validate(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := manager.Validate("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestPassword(t *testing.T) {
	t.Run("hash and check", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := CheckPassword("correct horse battery", hash); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := CheckPassword("wrong password!", hash); !errors.Is(err, ErrPasswordMismatch) {
			t.Fatalf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("too short", func(t *testing.T) {
		if _, err := HashPassword("short"); err == nil {
			t.Fatal("expected an error for a short password")
		}
	})
}
