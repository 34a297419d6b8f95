package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-ledger/internal/core/domain"
	"github.com/spendwise/expense-ledger/internal/core/ports"
)

// SessionService is the auth façade: it composes the credential store and the
// token service into a two-state machine. A request context is Anonymous
// until Login or Check produces a Session; an invalid token on Check drops it
// back to Anonymous.
type SessionService struct {
	auth   ports.AuthService
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewSessionService(auth ports.AuthService, tokens ports.TokenService, logger zerolog.Logger) *SessionService {
	return &SessionService{auth: auth, tokens: tokens, logger: logger}
}

// Login transitions Anonymous → Authenticated on correct credentials.
func (s *SessionService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	userID, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Msg("session established")
	return &ports.Session{UserID: userID, Token: token}, nil
}

// Check validates a token handed back by the client and slides the expiry
// window by issuing a replacement. Restoring a session after a page reload
// goes through the exact same path.
func (s *SessionService) Check(ctx context.Context, token string) (*ports.Session, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	fresh, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}

	return &ports.Session{UserID: userID, Token: fresh}, nil
}

// Logout transitions Authenticated → Anonymous and revokes the presented
// token so it cannot be replayed from a stale client-side store.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}
	s.logger.Info().Msg("session terminated")
	return nil
}
