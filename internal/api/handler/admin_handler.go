package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// AdminHandler serves the admin-only account endpoints.
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

type listUsersResponse struct {
	Data []*domain.User `json:"data"`
}

// ListUsers returns every registered account.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users})
}
