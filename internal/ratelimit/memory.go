package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter implements a fixed-window in-memory rate limiter. Windows are
// anchored at the first hit for a key, not at aligned clock boundaries, so a
// burst at the end of one window followed by a burst at the start of the next
// can briefly admit twice the limit. Stale keys are replaced on next access
// rather than evicted.
type MemoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*memoryEntry
}

// NewMemoryLimiter constructs a MemoryLimiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		counters: make(map[string]*memoryEntry),
	}
}

// Allow checks whether the request should be admitted in the current window.
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error) {
	if limit <= 0 || window <= 0 || key == "" {
		return Result{Allowed: true}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.counters[key]
	if entry == nil || entry.resetAt.Before(now) {
		entry = &memoryEntry{count: 1, resetAt: now.Add(window)}
		l.counters[key] = entry
		return Result{Allowed: true, Remaining: limit - 1, Reset: entry.resetAt}, nil
	}
	if entry.count >= limit {
		return Result{Allowed: false, Remaining: 0, Reset: entry.resetAt}, nil
	}
	entry.count++
	return Result{Allowed: true, Remaining: limit - entry.count, Reset: entry.resetAt}, nil
}
