package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWindow_Ceiling(t *testing.T) {
	w := New(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := w.Allow(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("attempt %d within the ceiling must be allowed", i)
		}
	}

	allowed, err := w.Allow(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("over-ceiling attempt: %v", err)
	}
	if allowed {
		t.Fatalf("attempt past the ceiling must be refused")
	}
}

func TestWindow_OriginsIndependent(t *testing.T) {
	w := New(1, time.Minute)
	ctx := context.Background()

	if allowed, _ := w.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatalf("first origin must be allowed")
	}
	if allowed, _ := w.Allow(ctx, "203.0.113.7"); allowed {
		t.Fatalf("first origin must be saturated")
	}
	if allowed, _ := w.Allow(ctx, "198.51.100.4"); !allowed {
		t.Fatalf("a different origin must not be affected")
	}
}

func TestWindow_RollsOver(t *testing.T) {
	w := New(1, 30*time.Millisecond)
	ctx := context.Background()

	if allowed, _ := w.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatalf("first attempt must be allowed")
	}
	if allowed, _ := w.Allow(ctx, "203.0.113.7"); allowed {
		t.Fatalf("second attempt inside the window must be refused")
	}

	time.Sleep(50 * time.Millisecond)

	if allowed, _ := w.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatalf("attempt after the window rolled over must be allowed")
	}
}

func TestWindow_RefusedAttemptNotCounted(t *testing.T) {
	w := New(1, 40*time.Millisecond)
	ctx := context.Background()

	if allowed, _ := w.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatalf("first attempt must be allowed")
	}

	// Hammering while saturated must not extend the lockout.
	for i := 0; i < 5; i++ {
		if allowed, _ := w.Allow(ctx, "203.0.113.7"); allowed {
			t.Fatalf("saturated origin must stay refused")
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(40 * time.Millisecond)

	if allowed, _ := w.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatalf("window must roll over from the admitted attempt, not the refused ones")
	}
}
