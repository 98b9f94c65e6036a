package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlidingWindowLimiter bounds login attempts per origin using a sorted set
// per origin, scored by attempt time. Used instead of the in-memory window
// when the service runs more than one replica behind a balancer.
// Key format: login_rl:<origin>
type SlidingWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewSlidingWindowLimiter creates a limiter allowing limit attempts per
// origin within window.
func NewSlidingWindowLimiter(client *redis.Client, limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{client: client, limit: int64(limit), window: window}
}

// Allow drops entries that fell out of the window, then admits the attempt
// only while the origin is under the ceiling. Admitted attempts are recorded.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, origin string) (bool, error) {
	key := l.key(origin)
	now := time.Now()
	floor := strconv.FormatInt(now.Add(-l.window).UnixNano(), 10)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", floor)
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	if count.Val() >= l.limit {
		return false, nil
	}

	pipe = l.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit record: %w", err)
	}
	return true, nil
}

func (l *SlidingWindowLimiter) key(origin string) string {
	return "login_rl:" + origin
}
