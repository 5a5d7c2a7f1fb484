package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickcare/config"
	"quickcare/internal/domain/entity"
	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/service"
	"quickcare/internal/testutil"
	"quickcare/pkg/jwt"

	"github.com/google/uuid"
)

// newHospitalClient returns a proxy client whose "hospa" backend is served
// by handler.
func newHospitalClient(t *testing.T, handler http.Handler, opts hospital.Options) *hospital.Client {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	dir, err := hospital.NewDirectory(map[string]string{"hospa": upstream.URL})
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}
	return hospital.NewClient(dir, opts, testutil.Logger())
}

func newSessionService(revocation service.TokenRevocationStore) *service.SessionService {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: 7 * 24 * time.Hour})
	return service.NewSessionService(jwtService, revocation, config.SessionConfig{CookieName: "token"}, testutil.Logger())
}

func seedUser(t *testing.T, store *testutil.Store, name, email string) *entity.User {
	t.Helper()
	user := &entity.User{ID: uuid.New(), Name: name, Email: email, Role: entity.RoleUser}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
