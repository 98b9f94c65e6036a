package ports

import "context"

// LoginLimiter bounds login attempts per origin within a sliding window.
// Allow reports whether this attempt is within the ceiling; once the
// ceiling is reached, further attempts are refused until the window rolls
// over. Scoped to the login endpoint only.
type LoginLimiter interface {
	Allow(ctx context.Context, origin string) (bool, error)
}
