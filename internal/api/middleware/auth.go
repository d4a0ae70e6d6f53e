package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/api/metrics"
	"github.com/taskforge/task-api/internal/core/token"
)

// Context keys set by Auth on successful verification.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth extracts the bearer token, verifies it against the access secret, and
// injects the resolved identity into the echo context. Expired and malformed
// tokens are rejected with the same external message; the distinction is
// only logged.
func Auth(tokens *token.Manager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication token required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, err := tokens.VerifyAccess(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("access token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}
