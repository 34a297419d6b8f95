package ports

import (
	"context"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// AuthRepository defines the interface for user identity persistence.
// Usernames arrive pre-normalized (lowercase) from the service layer.
type AuthRepository interface {
	// Create persists a new user. The database unique constraint is the
	// final arbiter on username collisions; a violation surfaces as
	// domain.ErrUserExists.
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no row matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
