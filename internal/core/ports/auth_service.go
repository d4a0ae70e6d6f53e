package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string // defaults to domain.RoleUser when empty
}

// TokenPair is returned on successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// PasswordHasher abstracts the hashing backend so CPU-bound bcrypt work can
// be offloaded to a worker pool without the service knowing.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

// AuthService defines the credential issuance and verification use cases,
// plus the admin-only account listing.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
