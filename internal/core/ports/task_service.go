package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string // defaults to Low
	Status      string // defaults to Pending
}

// UpdateTaskInput is a partial update: nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
}

// ListTasksInput carries all parameters for the list endpoint.
type ListTasksInput struct {
	Status   string
	Priority string
	Search   string
	DueFrom  time.Time
	DueTo    time.Time
	Page     int
	Limit    int
}

// ListTasksResult is returned by List.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines use-case operations for tasks. Every operation takes
// the caller's identity; non-admin callers are scoped to tasks they own.
type TaskService interface {
	Create(ctx context.Context, who domain.Identity, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, who domain.Identity, id string) (*domain.Task, error)
	List(ctx context.Context, who domain.Identity, in ListTasksInput) (*ListTasksResult, error)
	Update(ctx context.Context, who domain.Identity, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, who domain.Identity, id string) error
}
