package ratelimit

import "context"

// RateLimiter controls import throughput per target.
type RateLimiter interface {
	Allow(ctx context.Context, target string) (bool, error)
	Wait(ctx context.Context, target string) error
}
