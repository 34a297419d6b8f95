package ports

import (
	"context"
	"time"
)

// TokenService issues and validates the signed session tokens handed to the
// presentation layer. Tokens are opaque to callers.
type TokenService interface {
	// Issue returns a signed token encoding the user id, expiring after
	// the configured TTL.
	Issue(userID int64) (string, error)
	// Validate fails open: expired, tampered, revoked, or malformed tokens
	// all yield ok=false, never an error.
	Validate(ctx context.Context, token string) (userID int64, ok bool)
	// Revoke invalidates a still-valid token ahead of its expiry. Revoking
	// an already-expired or malformed token is a no-op.
	Revoke(ctx context.Context, token string) error
}

// TokenDenylist records revoked token ids until their natural expiry.
// Implementations must be safe for concurrent use.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
