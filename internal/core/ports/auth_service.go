package ports

import (
	"context"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// AuthService is the credential store: it owns password hashing and the
// username uniqueness contract.
type AuthService interface {
	// Register normalizes the username to lowercase and persists a new
	// account. Returns domain.ErrUserExists when the name is taken.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Authenticate returns the user id for correct credentials. Unknown
	// username and wrong password both yield domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (int64, error)
}
