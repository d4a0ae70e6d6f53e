package handler

import (
	"time"

	"github.com/taskforge/task-api/internal/core/domain"
)

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	Status      string     `json:"status"      validate:"omitempty,oneof=Pending Completed"`
}

// updateTaskRequest is a partial update: absent fields stay unchanged.
type updateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=Pending Completed"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTasksResponse struct {
	Data       []taskResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type deletedResponse struct {
	Message string `json:"message"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}
