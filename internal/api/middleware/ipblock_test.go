package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/core/domain"
)

type stubBlockRepo struct {
	block   *domain.IPBlock
	lookErr error
	lastIP  string
}

func (s *stubBlockRepo) FindActive(_ context.Context, ip string, _ time.Time) (*domain.IPBlock, error) {
	s.lastIP = ip
	if s.lookErr != nil {
		return nil, s.lookErr
	}
	return s.block, nil
}

func (s *stubBlockRepo) Upsert(context.Context, *domain.IPBlock) error { return nil }
func (s *stubBlockRepo) Delete(context.Context, string) (int64, error) { return 0, nil }
func (s *stubBlockRepo) FindAll(context.Context) ([]domain.IPBlock, error) {
	return nil, nil
}

func blockedContext(remoteAddr string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestIPBlock_Blocked(t *testing.T) {
	blocks := &stubBlockRepo{block: &domain.IPBlock{IP: "203.0.113.7", Reason: "abuse"}}
	c, rec := blockedContext("203.0.113.7:52114")

	handler := IPBlock(blocks, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("blocked request must not reach the handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("block response must be written, not returned: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var body struct {
		Kind   string `json:"kind"`
		Reason string `json:"reason"`
		Until  string `json:"until"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Kind != "ip_blocked" || body.Reason != "abuse" || body.Until != "permanent" {
		t.Fatalf("unexpected block payload: %+v", body)
	}
	if blocks.lastIP != "203.0.113.7" {
		t.Fatalf("lookup used wrong ip: %s", blocks.lastIP)
	}
}

func TestIPBlock_NotBlocked(t *testing.T) {
	blocks := &stubBlockRepo{}
	c, _ := blockedContext("203.0.113.7:52114")

	called := false
	handler := IPBlock(blocks, zerolog.Nop())(func(echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("clean request must pass, got %v", err)
	}
	if !called {
		t.Fatalf("next handler not invoked")
	}
}

func TestIPBlock_StoreFailureFailsOpen(t *testing.T) {
	blocks := &stubBlockRepo{lookErr: errors.New("connection refused")}
	c, _ := blockedContext("203.0.113.7:52114")

	called := false
	handler := IPBlock(blocks, zerolog.Nop())(func(echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("store failure must not reject the request, got %v", err)
	}
	if !called {
		t.Fatalf("request must proceed when the block store is down")
	}
}
