package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestManager_MemoryBackendWhenNoRedis(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager("", func() time.Time { return now }, nil)
	ctx := context.Background()
	rule := Rule{Limit: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		result, err := manager.Allow(ctx, "k", rule)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Allowed {
			t.Fatalf("expected call %d to be allowed", i+1)
		}
	}
	result, err := manager.Allow(ctx, "k", rule)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Allowed {
		t.Fatalf("expected third call to be rejected")
	}
}

func TestManager_FallsBackWhenRedisUnreachable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager("redis://127.0.0.1:1/0", func() time.Time { return now }, nil)
	ctx := context.Background()
	rule := Rule{Limit: 1, Window: time.Minute}

	result, err := manager.Allow(ctx, "k", rule)
	if err != nil {
		t.Fatalf("expected fallback instead of error, got %v", err)
	}
	if !result.Allowed {
		t.Fatalf("expected first call to be allowed via memory fallback")
	}

	// While the breaker is open the memory backend keeps enforcing.
	result, err = manager.Allow(ctx, "k", rule)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Allowed {
		t.Fatalf("expected second call to be rejected by memory limiter")
	}
}

func TestManager_BypassRules(t *testing.T) {
	manager := NewManager("", nil, nil)
	ctx := context.Background()

	if result, _ := manager.Allow(ctx, "k", Rule{}); !result.Allowed {
		t.Fatalf("expected empty rule to bypass")
	}
	if result, _ := manager.Allow(ctx, "", SendRequestRule); !result.Allowed {
		t.Fatalf("expected empty key to bypass")
	}
}

func TestRuleKeys(t *testing.T) {
	if got := SendRequestKey("u1"); got != "social:req:u1" {
		t.Fatalf("expected send key=%q, got %q", "social:req:u1", got)
	}
	if got := RespondKey("u1"); got != "social:resp:u1" {
		t.Fatalf("expected respond key=%q, got %q", "social:resp:u1", got)
	}
}
