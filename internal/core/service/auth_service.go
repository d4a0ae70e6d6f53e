package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
	"github.com/taskforge/task-api/internal/core/token"
)

// AuthService implements registration, login, and token refresh.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens *token.Manager
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens *token.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account. The email pre-check is a cheap early
// reject; the unique indexes on email and username are the authority, so a
// concurrent duplicate still surfaces as ErrDuplicateUser from Create.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues both token classes. A missing user
// and a wrong password yield the identical error so callers cannot probe
// which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash unreadable")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token from a refresh token. The role is
// re-read from the store, never trusted from the old token, so role changes
// take effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("refresh token rejected")
		return "", domain.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidRefreshToken
		}
		return "", err
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return "", err
	}
	return access, nil
}

// ListUsers returns all accounts. Exposed only behind the admin role; the
// route-level RBAC guard is the authority for that.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
