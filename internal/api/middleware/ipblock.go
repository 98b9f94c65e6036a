package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/api/metrics"
	"github.com/gamevault/license-server/internal/core/ports"
)

type ipBlockedResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
	Until  string `json:"until"`
}

// IPBlock denies requests from blocked addresses before any other
// processing. When the block store is unreachable it logs and lets the
// request through: this layer is defense in depth, and availability wins
// over it. Every other component in the pipeline fails closed; keep this
// asymmetry.
func IPBlock(blocks ports.IPBlockRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := ClientIP(c)

			block, err := blocks.FindActive(c.Request().Context(), ip, time.Now().UTC())
			if err != nil {
				log.Error().Err(err).Str("ip", ip).Msg("ip block lookup failed, allowing request")
				return next(c)
			}
			if block != nil {
				metrics.IPBlockedTotal.Inc()
				return c.JSON(http.StatusForbidden, ipBlockedResponse{
					Error:  "access denied: your IP address is blocked",
					Kind:   "ip_blocked",
					Reason: block.Reason,
					Until:  block.Until(),
				})
			}
			return next(c)
		}
	}
}
