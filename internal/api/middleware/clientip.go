package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"
)

// ClientIP extracts the request origin, preferring the first
// X-Forwarded-For entry over the socket address, and collapses IPv4-mapped
// IPv6 notation (::ffff:1.2.3.4) to plain IPv4 so block entries and rate
// limit keys match regardless of listener family.
func ClientIP(c echo.Context) string {
	ip := c.Request().Header.Get(echo.HeaderXForwardedFor)
	if ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		ip = strings.TrimSpace(ip)
	} else {
		host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
		if err != nil {
			host = c.Request().RemoteAddr
		}
		ip = host
	}
	return normalizeIP(ip)
}

func normalizeIP(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}
	return parsed.String()
}
