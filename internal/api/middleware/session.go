package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

// ContextUserKey is where the session validator stores the resolved user.
const ContextUserKey = "user"

// Session validates the bearer token and re-checks license state against
// the store on every request. The token proves who, the store proves
// still-allowed, so a long-lived token cannot outlive an expired license.
func Session(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return domain.ErrSessionExpired
				}
				return domain.ErrInvalidToken
			}
			if !tkn.Valid {
				return domain.ErrInvalidToken
			}

			id, _ := claims["id"].(string)
			if id == "" {
				return domain.ErrInvalidToken
			}

			// Current attributes, not the token's stale snapshot.
			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				return err
			}
			if user.LicenseExpired(time.Now().UTC()) {
				return domain.ErrLicenseExpired
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Session, or nil when the
// middleware did not run.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextUserKey).(*domain.User)
	return user
}
