package ports

import (
	"context"

	"github.com/gamevault/license-server/internal/core/domain"
)

// AuditService exposes the read side of the login log for the admin UI and
// the retention prune used by the sweeper.
type AuditService interface {
	RecentAttempts(ctx context.Context, limit int64) ([]domain.LoginAttemptView, error)
	Prune(ctx context.Context) (int64, error)
}
