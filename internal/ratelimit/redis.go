package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces rate limit counters in Redis.
const KeyPrefix = "bookmarks:ratelimit:"

// Key returns the counter key for client in the window starting at windowStart.
func Key(client string, windowStart time.Time) string {
	return KeyPrefix + client + ":" + strconv.FormatInt(windowStart.Unix(), 10)
}

// Redis counts requests per key in fixed windows shared by every replica
// pointing at the same Redis.
type Redis struct {
	client *goredis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedis allows limit requests per key in each window.
func NewRedis(client *goredis.Client, limit int, window time.Duration) *Redis {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Redis{client: client, limit: limit, window: window, now: time.Now}
}

// Allow increments the counter for key's current window.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	start := now.Truncate(r.window)
	k := Key(key, start)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := int(incr.Val())
	d := Decision{Limit: r.limit, Remaining: r.limit - count}
	if count <= r.limit {
		d.Allowed = true
		return d, nil
	}

	d.Remaining = 0
	d.RetryAfter = start.Add(r.window).Sub(now)
	if d.RetryAfter < time.Second {
		d.RetryAfter = time.Second
	}
	return d, nil
}
