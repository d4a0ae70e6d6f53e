package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP statuses at the
// API boundary. Raw storage or crypto errors must never surface to clients.
var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrHashFormat          = errors.New("malformed password hash")
	ErrTaskNotFound        = errors.New("task not found")
	ErrForbidden           = errors.New("access forbidden")
)
