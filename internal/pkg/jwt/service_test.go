package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	recruiterID := uuid.New()

	token, err := svc.GenerateAccessToken(recruiterID, "r@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.RecruiterID != recruiterID {
		t.Fatalf("expected recruiter %s, got %s", recruiterID, claims.RecruiterID)
	}
	if claims.Email != "r@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token, got %q", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token must not classify as refresh")
	}
}

func TestRefreshTokenClassification(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token classification")
	}
	if claims.Email != "" {
		t.Fatalf("refresh token must not carry an email, got %q", claims.Email)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateAccessToken(uuid.New(), "r@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestService()
	token, err := svc.GenerateAccessToken(uuid.New(), "r@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	other := NewHMACService("different-access", "different-refresh", 15*time.Minute, 24*time.Hour)
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
