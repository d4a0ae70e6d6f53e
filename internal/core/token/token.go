// Package token issues and verifies the two JWT classes used by the API:
// short-lived access tokens carrying {user_id, role} and longer-lived
// refresh tokens carrying only {user_id}. Each class is signed with its own
// symmetric secret so a leaked secret compromises only one class.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/task-api/internal/core/domain"
)

// AccessClaims is the payload embedded in access tokens.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload embedded in refresh tokens. It deliberately
// carries no role: the current role is re-read from the store on refresh.
type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies both token classes.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewManager builds a Manager. The two secrets must differ; Config.Validate
// enforces that before this is reached, but zero TTLs are defaulted here.
func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess signs an access token binding userID and role, valid for the
// configured access TTL.
func (m *Manager) IssueAccess(userID, role string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
}

// IssueRefresh signs a refresh token for userID, valid for the configured
// refresh TTL.
func (m *Manager) IssueRefresh(userID string) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
}

// VerifyAccess validates signature and expiry against the access secret and
// returns the embedded claims.
func (m *Manager) VerifyAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(raw, claims, m.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh validates signature and expiry against the refresh secret
// and returns the embedded claims.
func (m *Manager) VerifyRefresh(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(raw, claims, m.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *Manager) parse(raw string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		return domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return domain.ErrTokenInvalid
	}
	return nil
}
