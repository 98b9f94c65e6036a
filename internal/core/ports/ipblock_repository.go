package ports

import (
	"context"
	"time"

	"github.com/gamevault/license-server/internal/core/domain"
)

// IPBlockRepository persists address-level access blocks.
type IPBlockRepository interface {
	// FindActive returns the block entry for ip when one applies at the
	// given instant, or (nil, nil) when the address is not blocked. Expired
	// entries are treated as absent without being deleted.
	FindActive(ctx context.Context, ip string, now time.Time) (*domain.IPBlock, error)
	// Upsert inserts the entry or replaces an existing one for the same ip.
	Upsert(ctx context.Context, block *domain.IPBlock) error
	Delete(ctx context.Context, ip string) (int64, error)
	FindAll(ctx context.Context) ([]domain.IPBlock, error)
}
