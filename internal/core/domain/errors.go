package domain

import "errors"

var (
	// ErrMissingFields is returned when the login payload lacks email or password.
	ErrMissingFields = errors.New("email and password are required")

	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLicenseExpired is distinguishable from bad credentials: the
	// identity is already proven, the corrective action is different.
	ErrLicenseExpired = errors.New("license expired, contact your administrator")

	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionExpired  = errors.New("session expired")
	ErrForbidden       = errors.New("admin privileges required")
	ErrRateLimited     = errors.New("too many login attempts, try again later")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrIPBlockNotFound = errors.New("ip is not blocked")
)

// ErrorKind maps a client-visible error to its stable machine-readable
// kind. Anything unrecognized is an infrastructure fault and reported as
// "internal" so storage details never reach the client.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrLicenseExpired):
		return "license_expired"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrUserExists):
		return "user_exists"
	case errors.Is(err, ErrIPBlockNotFound):
		return "ip_block_not_found"
	default:
		return "internal"
	}
}
