package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr", "203.0.113.7:52114", "", "203.0.113.7"},
		{"forwarded single", "10.0.0.1:80", "198.51.100.4", "198.51.100.4"},
		{"forwarded chain takes first", "10.0.0.1:80", "198.51.100.4, 10.0.0.2, 10.0.0.3", "198.51.100.4"},
		{"forwarded with spaces", "10.0.0.1:80", "  198.51.100.4  ", "198.51.100.4"},
		{"ipv4 mapped collapses", "[::ffff:198.51.100.4]:52114", "", "198.51.100.4"},
		{"plain ipv6", "[2001:db8::1]:52114", "", "2001:db8::1"},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set(echo.HeaderXForwardedFor, tc.forwarded)
			}
			c := e.NewContext(req, httptest.NewRecorder())
			if got := ClientIP(c); got != tc.want {
				t.Fatalf("ClientIP() = %s, want %s", got, tc.want)
			}
		})
	}
}
