package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/api/middleware"
	"github.com/taskforge/task-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing user_id or role means the
// middleware did not run on this route, which is a wiring bug surfaced as a
// 401 rather than a panic deeper down.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Identity{UserID: userID, Role: role}, nil
}
