package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"quickcare/config"
	"quickcare/internal/domain/entity"
	"quickcare/internal/testutil"
	"quickcare/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestSessionService(store TokenRevocationStore) *SessionService {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: 7 * 24 * time.Hour})
	return NewSessionService(jwtService, store, config.SessionConfig{CookieName: "token", CookieSecure: true}, testutil.Logger())
}

func testUser() *entity.User {
	return &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@x.com", Role: entity.RoleUser}
}

func TestSessionService_IssueAndResolve(t *testing.T) {
	svc := newTestSessionService(testutil.NewRevocationStore())
	user := testUser()

	token, _, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session, ok := svc.Resolve(context.Background(), token)
	if !ok {
		t.Fatal("expected session to resolve")
	}
	if session.Claims.UserID != user.ID || session.Claims.Name != "Asha" {
		t.Errorf("unexpected claims %+v", session.Claims)
	}
}

func TestSessionService_ResolveInvalidIsAnonymous(t *testing.T) {
	svc := newTestSessionService(testutil.NewRevocationStore())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, ok := svc.Resolve(context.Background(), token); ok {
			t.Errorf("expected %q to resolve as anonymous", token)
		}
	}
}

func TestSessionService_RevokedIsAnonymous(t *testing.T) {
	store := testutil.NewRevocationStore()
	svc := newTestSessionService(store)

	token, claims, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Revoke(context.Background(), claims); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := svc.Resolve(context.Background(), token); ok {
		t.Error("expected revoked session to be anonymous")
	}
}

func TestSessionService_RevocationErrorFailsClosed(t *testing.T) {
	store := testutil.NewRevocationStore()
	svc := newTestSessionService(store)

	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Err = errors.New("redis down")
	if _, ok := svc.Resolve(context.Background(), token); ok {
		t.Error("expected revocation store failure to resolve as anonymous")
	}
}

func TestSessionService_RedisUnavailableFailsClosed(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	svc := newTestSessionService(NewRedisTokenRevocationStore(client))
	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := svc.Resolve(context.Background(), token); ok {
		t.Error("expected unreachable Redis to resolve as anonymous")
	}
}

func TestSessionService_Cookie(t *testing.T) {
	svc := newTestSessionService(nil)

	cookie := svc.Cookie("abc")
	if cookie.Name != "token" || cookie.Value != "abc" {
		t.Errorf("unexpected cookie %+v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("expected HttpOnly, Secure, SameSite=Strict cookie, got %+v", cookie)
	}
	if cookie.MaxAge != 7*24*60*60 {
		t.Errorf("expected 7d max age, got %d", cookie.MaxAge)
	}

	if cleared := svc.ClearCookie(); cleared.MaxAge >= 0 {
		t.Errorf("expected clearing cookie, got %+v", cleared)
	}
}
