package retention

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamevault/license-server/internal/core/domain"
)

type stubAuditService struct {
	prunes   atomic.Int64
	pruneErr error
}

func (s *stubAuditService) RecentAttempts(context.Context, int64) ([]domain.LoginAttemptView, error) {
	return nil, nil
}

func (s *stubAuditService) Prune(context.Context) (int64, error) {
	s.prunes.Add(1)
	if s.pruneErr != nil {
		return 0, s.pruneErr
	}
	return 2, nil
}

func waitForPrunes(t *testing.T, audit *stubAuditService, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if audit.prunes.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least %d prunes, got %d", want, audit.prunes.Load())
}

func TestSweeper_SweepsAtStartupAndOnTicks(t *testing.T) {
	audit := &stubAuditService{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewSweeper(audit, 20*time.Millisecond, zerolog.Nop()).Start(ctx)

	waitForPrunes(t, audit, 3)
}

func TestSweeper_StopsOnCancel(t *testing.T) {
	audit := &stubAuditService{}
	ctx, cancel := context.WithCancel(context.Background())

	NewSweeper(audit, 10*time.Millisecond, zerolog.Nop()).Start(ctx)
	waitForPrunes(t, audit, 1)
	cancel()

	time.Sleep(30 * time.Millisecond)
	settled := audit.prunes.Load()
	time.Sleep(50 * time.Millisecond)
	if audit.prunes.Load() != settled {
		t.Fatalf("sweeper kept running after cancel")
	}
}

func TestSweeper_SurvivesPruneFailure(t *testing.T) {
	audit := &stubAuditService{pruneErr: errors.New("connection refused")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewSweeper(audit, 15*time.Millisecond, zerolog.Nop()).Start(ctx)

	// Failures must not kill the loop; later ticks keep sweeping.
	waitForPrunes(t, audit, 3)
}
