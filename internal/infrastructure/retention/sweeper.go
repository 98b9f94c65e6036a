package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/api/metrics"
	"github.com/gamevault/license-server/internal/core/ports"
)

const defaultInterval = 24 * time.Hour

// Sweeper prunes expired audit records on a fixed schedule. It is owned by
// the process lifecycle: one sweep at startup, then one per interval, until
// the context is cancelled. Sweeps run independently of request handling
// and may race concurrent audit writes; the age cutoff makes that harmless.
type Sweeper struct {
	audit    ports.AuditService
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. If interval <= 0, defaultInterval is used.
func NewSweeper(audit ports.AuditService, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{audit: audit, interval: interval, log: log}
}

// Start launches the sweep goroutine. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.audit.Prune(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("audit retention sweep failed")
		return
	}
	metrics.AuditPrunedTotal.Add(float64(deleted))
}
