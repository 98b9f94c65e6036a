package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

// AuditService serves the admin read path over the login log and owns the
// retention cutoff used by the sweeper.
type AuditService struct {
	audit     ports.AuditRepository
	users     ports.UserRepository
	retention time.Duration
	log       zerolog.Logger
}

func NewAuditService(audit ports.AuditRepository, users ports.UserRepository, retention time.Duration, log zerolog.Logger) *AuditService {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &AuditService{audit: audit, users: users, retention: retention, log: log}
}

// RecentAttempts returns the newest attempts capped at limit, each joined
// to the user's display name when the attempt resolved to a user.
func (s *AuditService) RecentAttempts(ctx context.Context, limit int64) ([]domain.LoginAttemptView, error) {
	attempts, err := s.audit.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]*domain.User, len(users))
	for i := range users {
		names[users[i].ID] = &users[i]
	}

	views := make([]domain.LoginAttemptView, 0, len(attempts))
	for _, a := range attempts {
		view := domain.LoginAttemptView{LoginAttempt: a}
		if a.UserID != nil {
			if u, ok := names[*a.UserID]; ok {
				view.FirstName = u.FirstName
				view.LastName = u.LastName
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Prune deletes attempts older than the retention window and returns the
// number removed. Racing a concurrent append is harmless: the cutoff is an
// age bound, so a new record simply lands on the surviving side.
func (s *AuditService) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.retention)
	deleted, err := s.audit.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).
			Msg("pruned login attempts past retention")
	}
	return deleted, nil
}
