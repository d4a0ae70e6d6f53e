package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.lastKey = key
	return s.allowed, s.err
}

func TestRateLimit_AllowsUnderBudget(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	limiter := &stubLimiter{allowed: true}
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if limiter.lastKey == "" {
		t.Fatalf("limiter was not consulted")
	}
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RateLimit(&stubLimiter{allowed: false}, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

// Store failures must not lock clients out of the auth endpoints.
func TestRateLimit_FailsOpenOnStoreError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	limiter := &stubLimiter{allowed: false, err: errors.New("redis down")}
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
