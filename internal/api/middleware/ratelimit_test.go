package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/core/domain"
)

type stubLimiter struct {
	allowed bool
	err     error
	origin  string
}

func (s *stubLimiter) Allow(_ context.Context, origin string) (bool, error) {
	s.origin = origin
	return s.allowed, s.err
}

func TestLoginRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	c, _ := blockedContext("203.0.113.7:52114")

	called := false
	handler := LoginRateLimit(limiter, zerolog.Nop())(func(echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if !called {
		t.Fatalf("next handler not invoked")
	}
	if limiter.origin != "203.0.113.7" {
		t.Fatalf("limiter keyed on wrong origin: %s", limiter.origin)
	}
}

func TestLoginRateLimit_Rejects(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	c, _ := blockedContext("203.0.113.7:52114")

	handler := LoginRateLimit(limiter, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("throttled request must not reach the handler")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestLoginRateLimit_BackendFailureFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis: connection refused")}
	c, _ := blockedContext("203.0.113.7:52114")

	called := false
	handler := LoginRateLimit(limiter, zerolog.Nop())(func(echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("limiter failure must not reject the attempt, got %v", err)
	}
	if !called {
		t.Fatalf("attempt must proceed when the limiter backend is down")
	}
}
