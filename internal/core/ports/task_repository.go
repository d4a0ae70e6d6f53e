package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-api/internal/core/domain"
)

// TaskFilter carries all query parameters for listing tasks.
// UserID is enforced by the service layer for non-admin callers.
type TaskFilter struct {
	UserID   string    // empty = no owner filter (admin); non-empty = scoped to owner
	Status   string    // optional: filter by task status
	Priority string    // optional: filter by task priority
	Search   string    // optional: partial match on title
	DueFrom  time.Time // optional: due_date >= DueFrom
	DueTo    time.Time // optional: due_date <= DueTo
	Page     int       // 1-based
	Limit    int       // max rows per page (capped at 100 by service)
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	// FindByID retrieves a task by id. When ownerID is non-empty, the query
	// is additionally filtered by user_id so foreign tasks surface as
	// domain.ErrTaskNotFound.
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Task, error)
	// List returns a page of tasks matching filter and the total count.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	// Delete removes a task, scoped by ownerID like FindByID.
	Delete(ctx context.Context, id string, ownerID string) error
}
