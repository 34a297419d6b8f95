package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/expense-ledger/internal/core/domain"
	"github.com/spendwise/expense-ledger/internal/core/ports"
)

// AuthService implements the credential store: registration and password
// verification over bcrypt hashes.
type AuthService struct {
	repo   ports.AuthRepository
	cost   int
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, cost: bcryptCost, logger: logger}
}

// Register creates a new account under the lowercase-normalized username.
// The pre-insert lookup is only a cheap short-circuit; the database unique
// constraint settles races between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials and returns the user id. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (int64, error) {
	username = normalizeUsername(username)

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, domain.ErrInvalidCredentials
		}
		return 0, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return 0, domain.ErrInvalidCredentials
	}

	return user.ID, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
