package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{ErrMissingFields, "missing_fields"},
		{ErrInvalidCredentials, "invalid_credentials"},
		{ErrLicenseExpired, "license_expired"},
		{ErrRateLimited, "rate_limited"},
		{ErrUnauthenticated, "unauthenticated"},
		{ErrInvalidToken, "invalid_token"},
		{ErrSessionExpired, "session_expired"},
		{ErrForbidden, "forbidden"},
		{ErrUserNotFound, "user_not_found"},
		{fmt.Errorf("find user: %w", ErrUserNotFound), "user_not_found"},
		{errors.New("connection refused"), "internal"},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.kind {
			t.Fatalf("ErrorKind(%v) = %s, want %s", tc.err, got, tc.kind)
		}
	}
}
