package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/license-server/internal/core/domain"
)

func TestRequireAdmin_Allows(t *testing.T) {
	c := newContext(t, "")
	c.Set(ContextUserKey, &domain.User{ID: "user_1", IsAdmin: true})

	called := false
	handler := RequireAdmin()(func(echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("admin must pass, got %v", err)
	}
	if !called {
		t.Fatalf("next handler not invoked")
	}
}

func TestRequireAdmin_Forbidden(t *testing.T) {
	c := newContext(t, "")
	c.Set(ContextUserKey, &domain.User{ID: "user_1", IsAdmin: false})

	handler := RequireAdmin()(func(echo.Context) error { return nil })
	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAdmin_MissingContextUser(t *testing.T) {
	handler := RequireAdmin()(func(echo.Context) error { return nil })

	err := handler(newContext(t, ""))
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for missing context user, got %v", err)
	}
}
