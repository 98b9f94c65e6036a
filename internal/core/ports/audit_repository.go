package ports

import (
	"context"
	"time"

	"github.com/gamevault/license-server/internal/core/domain"
)

// AuditRepository persists the append-only login attempt log.
type AuditRepository interface {
	Append(ctx context.Context, attempt *domain.LoginAttempt) error
	FindRecent(ctx context.Context, limit int64) ([]domain.LoginAttempt, error)
	FindByUser(ctx context.Context, userID string, limit int64) ([]domain.LoginAttempt, error)
	// DeleteOlderThan removes records created before cutoff and returns how
	// many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
