package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"footballadmin/internal/observability"

	"golang.org/x/crypto/bcrypt"
)

func newTestProcessor(t *testing.T, password string) AuthProcessor {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return New(string(hash), "test-secret", observability.NewLogger())
}

func TestLogin(t *testing.T) {
	processor := newTestProcessor(t, "hunter2")
	ctx := context.Background()

	t.Run("valid password issues a session token", func(t *testing.T) {
		token, expiresAt, err := processor.Login(ctx, "hunter2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Error("expected a non-empty token")
		}
		if remaining := time.Until(expiresAt); remaining < 23*time.Hour {
			t.Errorf("expected ~24h session lifetime, got %v", remaining)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := processor.Login(ctx, "wrong")
		if !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("expected ErrInvalidPassword, got %v", err)
		}
	})
}

func TestValidateSession(t *testing.T) {
	processor := newTestProcessor(t, "hunter2")
	ctx := context.Background()

	t.Run("accepts a token it issued", func(t *testing.T) {
		token, _, err := processor.Login(ctx, "hunter2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := processor.ValidateSession(token); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if err := processor.ValidateSession("not-a-token"); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := newTestProcessor(t, "hunter2")
		other.jwtSecret = []byte("other-secret")
		token, _, err := other.Login(ctx, "hunter2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := processor.ValidateSession(token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}
	})
}
