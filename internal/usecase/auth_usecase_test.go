package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/infrastructure/google"
	"quickcare/internal/service"
	"quickcare/internal/testutil"
)

func newAuthUsecase(t *testing.T, store *testutil.Store, verifier GoogleTokenVerifier) (AuthUsecase, *service.SessionService) {
	t.Helper()
	sessions := newSessionService(testutil.NewRevocationStore())
	audit := service.NewAuditService(testutil.Logger(), store.AuditLogs())
	return NewAuthUsecase(testutil.Logger(), store.Users(), sessions, verifier, audit), sessions
}

func TestSignup_OnceThenConflict(t *testing.T) {
	store := testutil.NewStore()
	uc, sessions := newAuthUsecase(t, store, nil)
	ctx := context.Background()

	result, err := uc.Signup(ctx, &dto.SignupRequest{Name: "Asha", Email: "asha@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" || result.User.Name != "Asha" {
		t.Errorf("unexpected result %+v", result)
	}
	if _, ok := sessions.Resolve(ctx, result.Token); !ok {
		t.Error("expected issued token to resolve")
	}

	_, err = uc.Signup(ctx, &dto.SignupRequest{Name: "Other", Email: "ASHA@X.com", Password: "secret2"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists for case-insensitive duplicate, got %v", err)
	}
}

func TestSignup_WeakPassword(t *testing.T) {
	uc, _ := newAuthUsecase(t, testutil.NewStore(), nil)

	_, err := uc.Signup(context.Background(), &dto.SignupRequest{Name: "A", Email: "a@x.com", Password: "12345"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLogin_IdenticalFailures(t *testing.T) {
	store := testutil.NewStore()
	uc, _ := newAuthUsecase(t, store, nil)
	ctx := context.Background()

	if _, err := uc.Signup(ctx, &dto.SignupRequest{Name: "Asha", Email: "asha@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, wrongPassword := uc.Login(ctx, &dto.LoginRequest{Email: "asha@x.com", Password: "wrong-pass"})
	_, unknownEmail := uc.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "secret1"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("expected identical messages, got %q and %q", wrongPassword, unknownEmail)
	}

	result, err := uc.Login(ctx, &dto.LoginRequest{Email: " Asha@X.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Email != "asha@x.com" {
		t.Errorf("unexpected user %+v", result.User)
	}
}

func TestLogin_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	store := testutil.NewStore()
	user := seedUser(t, store, "G", "g@x.com")
	user.LinkGoogle("g-1", "")
	if err := store.Users().Update(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc, _ := newAuthUsecase(t, store, nil)
	if _, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "g@x.com", Password: ""}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func googleVerifier(t *testing.T) *google.TokenVerifier {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "asha":
			w.Write([]byte(`{"sub":"g-asha","email":"asha@x.com","name":"Asha G","picture":"https://pic/asha"}`))
		case "noname":
			w.Write([]byte(`{"sub":"g-ravi","email":"ravi@x.com"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_token"}`))
		}
	}))
	t.Cleanup(server.Close)
	return google.NewTokenVerifier(server.URL, "", nil)
}

func TestGoogleLogin_LinksExistingAccount(t *testing.T) {
	store := testutil.NewStore()
	existing := seedUser(t, store, "Asha", "asha@x.com")
	uc, _ := newAuthUsecase(t, store, googleVerifier(t))

	result, err := uc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{Credential: "asha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.ID != existing.ID {
		t.Errorf("expected existing account to be reused")
	}

	linked, _ := store.Users().FindByID(context.Background(), existing.ID)
	if linked.GoogleID == nil || *linked.GoogleID != "g-asha" || !linked.IsGoogleUser {
		t.Errorf("expected google id to be linked, got %+v", linked)
	}
	if linked.Name != "Asha" {
		t.Errorf("expected local name to be kept, got %q", linked.Name)
	}
}

func TestGoogleLogin_CreatesAccount(t *testing.T) {
	store := testutil.NewStore()
	uc, _ := newAuthUsecase(t, store, googleVerifier(t))

	result, err := uc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{Credential: "noname"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Name != "ravi" || !result.User.IsGoogleUser {
		t.Errorf("expected name from email local part, got %+v", result.User)
	}

	actions := store.Actions()
	if len(actions) != 2 || actions[0] != entity.AuditActionUserRegister || actions[1] != entity.AuditActionUserGoogleLogin {
		t.Errorf("unexpected audit actions %v", actions)
	}
}

func TestGoogleLogin_InvalidCredential(t *testing.T) {
	uc, _ := newAuthUsecase(t, testutil.NewStore(), googleVerifier(t))

	if _, err := uc.GoogleLogin(context.Background(), &dto.GoogleLoginRequest{Credential: "forged"}); !errors.Is(err, ErrInvalidGoogleCredential) {
		t.Errorf("expected ErrInvalidGoogleCredential, got %v", err)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	store := testutil.NewStore()
	uc, sessions := newAuthUsecase(t, store, nil)
	ctx := context.Background()

	result, err := uc.Signup(ctx, &dto.SignupRequest{Name: "Asha", Email: "asha@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session, ok := sessions.Resolve(ctx, result.Token)
	if !ok {
		t.Fatal("expected session to resolve")
	}

	if err := uc.Logout(ctx, session.Claims); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sessions.Resolve(ctx, result.Token); ok {
		t.Error("expected logged out token to be anonymous")
	}
}
