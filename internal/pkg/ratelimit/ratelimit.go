// Package ratelimit provides an in-process sliding-window attempt limiter.
// Single-replica deployments need no cross-process coordination, so a
// mutex-guarded map of timestamps per origin is sufficient.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window counts attempts per origin within a sliding window.
type Window struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

// New creates a limiter allowing limit attempts per origin within window.
func New(limit int, window time.Duration) *Window {
	return &Window{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
	}
}

// Allow reports whether this attempt is within the ceiling for origin and
// records it when admitted. Attempts older than the window are discarded on
// each call, so the map never grows past one window of traffic per origin.
func (w *Window) Allow(_ context.Context, origin string) (bool, error) {
	now := time.Now()
	floor := now.Add(-w.window)

	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.hits[origin][:0]
	for _, t := range w.hits[origin] {
		if t.After(floor) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= w.limit {
		w.hits[origin] = kept
		return false, nil
	}

	w.hits[origin] = append(kept, now)
	return true, nil
}
