package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/api/metrics"
	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

// LoginRateLimit bounds attempts per origin on the login endpoint only. It
// runs before the credential verifier and never touches the audit log. A
// limiter backend fault is logged and the request proceeds: throttling is
// not a statement about identity or license state, so it does not inherit
// the fail-closed rule.
func LoginRateLimit(limiter ports.LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := ClientIP(c)

			allowed, err := limiter.Allow(c.Request().Context(), origin)
			if err != nil {
				log.Warn().Err(err).Str("origin", origin).Msg("rate limiter unavailable, allowing attempt")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
