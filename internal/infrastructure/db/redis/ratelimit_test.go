package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int64, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, max, window), srv
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d should be within budget", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatalf("fourth request should exceed budget")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatalf("first client first request should pass")
	}
	if allowed, _ := limiter.Allow(ctx, "10.0.0.1"); allowed {
		t.Fatalf("first client second request should be limited")
	}
	if allowed, _ := limiter.Allow(ctx, "10.0.0.2"); !allowed {
		t.Fatalf("second client must not share the first client's budget")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	limiter, srv := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "10.0.0.1"); !allowed {
		t.Fatalf("first request should pass")
	}
	if allowed, _ := limiter.Allow(ctx, "10.0.0.1"); allowed {
		t.Fatalf("second request should be limited")
	}

	srv.FastForward(time.Minute + time.Second)

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !allowed {
		t.Fatalf("counter should reset after the window expires")
	}
}

func TestRateLimiter_StoreDownReturnsError(t *testing.T) {
	limiter, srv := newTestLimiter(t, 3, time.Minute)
	srv.Close()

	if _, err := limiter.Allow(context.Background(), "10.0.0.1"); err == nil {
		t.Fatalf("expected error when the store is unreachable")
	}
}
