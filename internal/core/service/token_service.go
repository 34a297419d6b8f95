package service

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spendwise/expense-ledger/internal/core/ports"
)

// DefaultTokenTTL is the validity window of a session token. Validation via
// the session façade issues a replacement token, so an active user slides the
// window forward indefinitely while an idle one is signed out after 5 minutes.
const DefaultTokenTTL = 5 * time.Minute

// TokenService issues and validates HS256-signed session tokens. An optional
// denylist lets logout revoke a token before its natural expiry.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.TokenDenylist
	logger   zerolog.Logger
}

// NewTokenService builds a TokenService. denylist may be nil, in which case
// revocation is a no-op and only expiry ends a session.
func NewTokenService(secret string, ttl time.Duration, denylist ports.TokenDenylist, logger zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, denylist: denylist, logger: logger}
}

// Issue signs a token carrying the user id as subject and a unique jti for
// revocation.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate fails open: any structural, signature, or expiry problem yields
// ok=false rather than an error, and so does a revoked jti.
func (s *TokenService) Validate(ctx context.Context, token string) (int64, bool) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, false
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Treat a denylist outage as a failed check rather than
			// accepting a possibly-revoked token.
			s.logger.Warn().Err(err).Msg("denylist check failed")
			return 0, false
		}
		if revoked {
			return 0, false
		}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// Revoke denylists the token's jti for the remainder of its validity. An
// expired or malformed token needs no revocation and returns nil.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if s.denylist == nil {
		return nil
	}

	claims, err := s.parse(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, ttl)
}

func (s *TokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
