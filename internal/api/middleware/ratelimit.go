package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/api/metrics"
)

// RateLimiter abstracts the counter store backing the rate limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests exceeding the per-client budget with 429. When
// the counter store is unreachable the request is allowed through: auth
// endpoints degrading to un-throttled beats rejecting all logins.
func RateLimit(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
