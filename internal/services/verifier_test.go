package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/models"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(h)
}

func TestBcryptVerifier_Verify(t *testing.T) {
	db, _ := newSQLMockDB(t)

	alice := &models.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "correct-secret"),
		Enabled:      true,
	}
	bob := &models.User{
		ID:           "u2",
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: hashPassword(t, "pw"),
		Enabled:      false,
	}
	rm := defaultManager(alice, bob)
	v := NewBcryptVerifier(db, rm)

	t.Run("correct password by username", func(t *testing.T) {
		identity, err := v.Verify(context.Background(), "alice", "correct-secret")
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if identity != "alice" {
			t.Fatalf("identity mismatch: got %q", identity)
		}
	})

	t.Run("correct password by email", func(t *testing.T) {
		identity, err := v.Verify(context.Background(), "alice@example.com", "correct-secret")
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if identity != "alice" {
			t.Fatalf("identity mismatch: got %q", identity)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "alice", "wrong")
		if !errors.Is(err, common.ErrBadCredentials) {
			t.Fatalf("expected ErrBadCredentials, got %v", err)
		}
	})

	t.Run("unknown user yields the same error", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "nobody", "whatever")
		if !errors.Is(err, common.ErrBadCredentials) {
			t.Fatalf("expected ErrBadCredentials, got %v", err)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "bob", "pw")
		if !errors.Is(err, common.ErrPrincipalDisabled) {
			t.Fatalf("expected ErrPrincipalDisabled, got %v", err)
		}
	})
}
