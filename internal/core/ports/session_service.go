package ports

import "context"

// Session is the explicit authenticated-state object passed between the
// façade and the transport layer. A nil Session means Anonymous.
type Session struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// SessionService composes the credential store and the token service into the
// login / check / logout contract consumed by the HTTP layer.
type SessionService interface {
	// Login authenticates and, on success, issues a fresh session.
	// Failures surface as domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*Session, error)
	// Check validates a token handed back by the client and returns a
	// refreshed session carrying a replacement token (sliding expiry).
	// The caller must discard the old token. An invalid token returns
	// domain.ErrInvalidCredentials, dropping the caller to Anonymous.
	Check(ctx context.Context, token string) (*Session, error)
	// Logout revokes the token so it cannot be replayed for the rest of
	// its validity window. Always safe to call; idempotent.
	Logout(ctx context.Context, token string) error
}
