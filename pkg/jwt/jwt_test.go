package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"quickcare/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: 7 * 24 * time.Hour})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, issued, err := svc.GenerateSessionToken(userID, "asha@x.com", "Asha", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID || claims.Name != "Asha" || claims.Role != "user" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.TokenID != issued.TokenID {
		t.Errorf("expected token id %q, got %q", issued.TokenID, claims.TokenID)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("expected 7d lifetime, got %s", got)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateSessionToken(uuid.New(), "a@x.com", "A", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateSessionToken(uuid.New(), "a@x.com", "A", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Swap in the payload of another user's token, keeping the signature
	forged, _, err := svc.GenerateSessionToken(uuid.New(), "b@x.com", "B", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := strings.Split(token, ".")
	parts[1] = strings.Split(forged, ".")[1]
	tampered := strings.Join(parts, ".")
	if _, err := svc.ValidateToken(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for tampered token, got %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "other-secret", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for foreign secret, got %v", err)
	}

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}
