package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per sliding window. Zero disables a window.
type Limits struct {
	PerMinute int
	PerHour   int
}

// RateLimiter is a burst limiter keyed by caller. It protects the API from
// floods; the daily generation quota is enforced separately from the
// database.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
