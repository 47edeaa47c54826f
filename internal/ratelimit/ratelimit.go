// Package ratelimit limits requests per client key, either in process memory
// or in a Redis fixed window shared by every replica.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int           // advertised limit for X-RateLimit-Limit
	Remaining  int           // requests left before the next refusal
	RetryAfter time.Duration // set when Allowed is false
}

// Limiter decides whether a request from key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
