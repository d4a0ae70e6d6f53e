package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window request counter backed by Redis.
// Key format: ratelimit:<client_key>
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewRateLimiter allows up to max requests per client key within each
// window.
func NewRateLimiter(client *redis.Client, max int64, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, max: max, window: window}
}

// Allow increments the counter for key and reports whether the request fits
// the budget. The window TTL is set on the first hit only, so the window is
// fixed rather than sliding.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.key(key)

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}

func (l *RateLimiter) key(clientKey string) string {
	return fmt.Sprintf("ratelimit:%s", clientKey)
}
