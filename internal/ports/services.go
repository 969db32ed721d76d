package ports

import (
	"context"
	"time"
)

// TokenService issues and validates admin access tokens
type TokenService interface {
	GenerateAccessToken(adminID int64, username string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims carries the validated identity of an admin token
type TokenClaims struct {
	AdminID  int64
	Username string
}

// RateLimitService throttles repeated requests per key
type RateLimitService interface {
	// CheckLimit records an attempt and reports whether it is still within
	// the allowed count for the window.
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// PasswordService hashes and verifies admin passwords
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}
