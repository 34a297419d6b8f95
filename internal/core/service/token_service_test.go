package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[jti] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[jti]
	return ok, nil
}

func TestTokenService_IssueValidateRoundtrip(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute, nil, zerolog.Nop())

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userID, ok := svc.Validate(context.Background(), token)
	if !ok {
		t.Fatalf("expected token to validate")
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestTokenService_Validate_Expired(t *testing.T) {
	// A negative TTL mints tokens that are already past their expiry.
	svc := NewTokenService("secret", 5*time.Minute, nil, zerolog.Nop())
	svc.ttl = -time.Minute

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, ok := svc.Validate(context.Background(), token); ok {
		t.Fatalf("expired token must not validate")
	}
}

func TestTokenService_Validate_FailsOpenToAnonymous(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute, nil, zerolog.Nop())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, ok := svc.Validate(context.Background(), token); ok {
			t.Fatalf("token %q must not validate", token)
		}
	}
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", 5*time.Minute, nil, zerolog.Nop())
	verifier := NewTokenService("secret-b", 5*time.Minute, nil, zerolog.Nop())

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, ok := verifier.Validate(context.Background(), token); ok {
		t.Fatalf("token signed with another secret must not validate")
	}
}

func TestTokenService_RevokeBlocksValidation(t *testing.T) {
	denylist := newStubDenylist()
	svc := NewTokenService("secret", 5*time.Minute, denylist, zerolog.Nop())

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, ok := svc.Validate(context.Background(), token); !ok {
		t.Fatalf("expected token to validate before revocation")
	}

	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if len(denylist.revoked) != 1 {
		t.Fatalf("expected one denylisted jti, got %d", len(denylist.revoked))
	}
	for _, ttl := range denylist.revoked {
		if ttl <= 0 || ttl > 5*time.Minute {
			t.Fatalf("denylist TTL should match remaining validity, got %v", ttl)
		}
	}

	if _, ok := svc.Validate(context.Background(), token); ok {
		t.Fatalf("revoked token must not validate")
	}
}

func TestTokenService_RevokeMalformedIsNoop(t *testing.T) {
	denylist := newStubDenylist()
	svc := NewTokenService("secret", 5*time.Minute, denylist, zerolog.Nop())

	if err := svc.Revoke(context.Background(), "garbage"); err != nil {
		t.Fatalf("Revoke of malformed token returned error: %v", err)
	}
	if len(denylist.revoked) != 0 {
		t.Fatalf("malformed token must not reach the denylist")
	}
}
