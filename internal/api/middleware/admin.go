package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/license-server/internal/core/domain"
)

// RequireAdmin gates routes on the admin flag of the user resolved by
// Session. It performs no token work of its own and must run strictly
// after Session: a missing context user is a middleware ordering bug, not
// an authorization outcome.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "identity missing from request context")
			}
			if !user.IsAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
