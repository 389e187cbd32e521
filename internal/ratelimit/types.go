package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter provides fixed-window rate limit checks.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error)
}

// Rule pairs an admission limit with its window length.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Per-endpoint admission rules for social write endpoints.
var (
	// SendRequestRule throttles friend request sends per caller.
	SendRequestRule = Rule{Limit: 10, Window: time.Minute}
	// RespondRule throttles friend request responses per caller.
	RespondRule = Rule{Limit: 20, Window: time.Minute}
)

// SendRequestKey builds the limiter key for friend request sends.
func SendRequestKey(userID string) string {
	return "social:req:" + userID
}

// RespondKey builds the limiter key for friend request responses.
func RespondKey(userID string) string {
	return "social:resp:" + userID
}
