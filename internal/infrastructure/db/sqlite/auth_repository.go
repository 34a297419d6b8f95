package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// AuthRepository persists user identities through the retrying gateway.
type AuthRepository struct {
	gw *Gateway
}

func NewAuthRepository(gw *Gateway) *AuthRepository {
	return &AuthRepository{gw: gw}
}

// Create inserts a new user row. The UNIQUE constraint on username is the
// final arbiter on registration races; a violation maps to ErrUserExists.
func (r *AuthRepository) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	var id int64
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO users (username, password_hash) VALUES (?, ?)",
			username, passwordHash,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if isConstraintViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.gw.Execute(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			"SELECT id, username, password_hash FROM users WHERE username = ?",
			username,
		).Scan(&u.ID, &u.Username, &u.PasswordHash)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
