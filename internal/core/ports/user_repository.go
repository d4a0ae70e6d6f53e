package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
// Absent rows are reported as domain.ErrUserNotFound; unique-constraint
// violations on email or username as domain.ErrDuplicateUser.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
