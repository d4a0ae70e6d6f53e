package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/token"
)

func testTokens() *token.Manager {
	return token.NewManager("mw-access-secret", "mw-refresh-secret", time.Hour, 24*time.Hour)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := testTokens()
	signed, err := tokens.IssueAccess("user-1", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxRole) != "admin" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "authentication token required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

// Expired and malformed tokens must produce the same external message.
func TestAuthMiddleware_UniformInvalidMessage(t *testing.T) {
	e := echo.New()
	tokens := testTokens()

	claims := token.AccessClaims{
		UserID: "user-1",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("mw-access-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	mw := Auth(tokens, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	var messages []any
	for _, raw := range []string{expiredToken, "not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
		messages = append(messages, he.Message)
	}

	if messages[0] != messages[1] {
		t.Fatalf("expired and malformed tokens must be indistinguishable: %v vs %v", messages[0], messages[1])
	}
}

// A refresh token must never authenticate a request.
func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	e := echo.New()
	tokens := testTokens()
	refresh, err := tokens.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(tokens, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err = handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
