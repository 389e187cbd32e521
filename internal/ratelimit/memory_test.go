package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_AllowsExactlyLimitPerWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		result, err := limiter.Allow(ctx, "k", 5, time.Minute, now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Allowed {
			t.Fatalf("expected call %d to be allowed", i+1)
		}
		if result.Remaining != 5-(i+1) {
			t.Fatalf("expected remaining=%d, got %d", 5-(i+1), result.Remaining)
		}
	}

	result, err := limiter.Allow(ctx, "k", 5, time.Minute, now.Add(6*time.Second))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Allowed {
		t.Fatalf("expected sixth call to be rejected")
	}
	if result.Remaining != 0 {
		t.Fatalf("expected remaining=0, got %d", result.Remaining)
	}
}

func TestMemoryLimiter_RejectDoesNotMutate(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, _ := limiter.Allow(ctx, "k", 1, time.Minute, now)
	if !first.Allowed {
		t.Fatalf("expected first call to be allowed")
	}

	// Repeated rejections must not extend or restart the window.
	for i := 0; i < 3; i++ {
		rejected, _ := limiter.Allow(ctx, "k", 1, time.Minute, now.Add(time.Duration(i+1)*time.Second))
		if rejected.Allowed {
			t.Fatalf("expected rejection %d", i+1)
		}
		if !rejected.Reset.Equal(first.Reset) {
			t.Fatalf("expected reset=%v, got %v", first.Reset, rejected.Reset)
		}
	}
}

func TestMemoryLimiter_WindowReset(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, _ := limiter.Allow(ctx, "k", 1, time.Minute, now)
	if !first.Allowed {
		t.Fatalf("expected first call to be allowed")
	}
	blocked, _ := limiter.Allow(ctx, "k", 1, time.Minute, now.Add(30*time.Second))
	if blocked.Allowed {
		t.Fatalf("expected second call to be rejected")
	}

	// resetAt itself is still inside the window; expiry is strict.
	atEdge, _ := limiter.Allow(ctx, "k", 1, time.Minute, first.Reset)
	if atEdge.Allowed {
		t.Fatalf("expected call at reset instant to be rejected")
	}

	after, _ := limiter.Allow(ctx, "k", 1, time.Minute, first.Reset.Add(time.Millisecond))
	if !after.Allowed {
		t.Fatalf("expected call after reset to be allowed")
	}
	if after.Remaining != 0 {
		t.Fatalf("expected fresh window count=1, remaining=0, got %d", after.Remaining)
	}
	if !after.Reset.After(first.Reset) {
		t.Fatalf("expected new reset after old reset")
	}
}

func TestMemoryLimiter_KeyIndependence(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if result, _ := limiter.Allow(ctx, "a", 2, time.Minute, now); !result.Allowed {
			t.Fatalf("expected key a call %d to be allowed", i+1)
		}
	}
	if result, _ := limiter.Allow(ctx, "a", 2, time.Minute, now); result.Allowed {
		t.Fatalf("expected key a to be exhausted")
	}
	if result, _ := limiter.Allow(ctx, "b", 2, time.Minute, now); !result.Allowed {
		t.Fatalf("expected key b to be unaffected")
	}
}

func TestMemoryLimiter_DisabledInputs(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()
	now := time.Now().UTC()

	if result, _ := limiter.Allow(ctx, "k", 0, time.Minute, now); !result.Allowed {
		t.Fatalf("expected zero limit to bypass")
	}
	if result, _ := limiter.Allow(ctx, "k", 5, 0, now); !result.Allowed {
		t.Fatalf("expected zero window to bypass")
	}
	if result, _ := limiter.Allow(ctx, "", 5, time.Minute, now); !result.Allowed {
		t.Fatalf("expected empty key to bypass")
	}
}
