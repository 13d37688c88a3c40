package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter backed by Redis, shared
// across instances. Key format: ratelimit:<scope>:<subject>:<window_start>
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a RateLimiter allowing limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts one request for the subject and reports whether it is within
// the window's budget. The INCR and EXPIRE run in one pipeline; the key
// expires with the window so stale counters never accumulate.
func (l *RateLimiter) Allow(ctx context.Context, scope, subject string) (bool, error) {
	key := l.key(scope, subject)

	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	return count.Val() <= l.limit, nil
}

func (l *RateLimiter) key(scope, subject string) string {
	// Sub-second windows floor to one second so the divisor is never zero.
	secs := int64(l.window / time.Second)
	if secs < 1 {
		secs = 1
	}
	windowStart := time.Now().Unix() / secs
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, subject, windowStart)
}
