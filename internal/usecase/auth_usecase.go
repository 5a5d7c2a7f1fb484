package usecase

import (
	"context"
	"errors"
	"strings"

	"quickcare/internal/converter"
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"
	"quickcare/internal/infrastructure/google"
	"quickcare/internal/service"
	"quickcare/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrEmailAlreadyExists      = errors.New("user with this email already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrWeakPassword            = errors.New("password must be at least 6 characters long")
	ErrInvalidGoogleCredential = errors.New("invalid google credential")
	ErrGoogleUnavailable       = errors.New("google sign-in is unavailable")
	ErrUserNotFound            = errors.New("user not found")
	ErrAuthenticationRequired  = errors.New("authentication required")
)

// dummyPasswordHash is compared against when the email is unknown so both
// login failure paths cost one bcrypt comparison.
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("quickcare-dummy-password"), bcrypt.DefaultCost)

// GoogleTokenVerifier verifies a Google ID token.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, credential string) (*google.Identity, error)
}

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error)
	GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.AuthResult, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log            *logrus.Logger
	userRepo       repository.UserRepository
	sessionService *service.SessionService
	googleVerifier GoogleTokenVerifier
	auditService   service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessionService *service.SessionService,
	googleVerifier GoogleTokenVerifier,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:            log,
		userRepo:       userRepo,
		sessionService: sessionService,
		googleVerifier: googleVerifier,
		auditService:   auditService,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashedPassword),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     entity.RoleUser,
	}

	// The unique index decides races between concurrent signups
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserRegister, entity.JSON{"email": user.Email})

	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil || !user.HasPassword() {
		bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserLogin, nil)

	return u.issue(user)
}

// GoogleLogin finds or creates the local account for a verified Google
// identity, linking the Google id to an existing account with that email.
func (u *authUsecase) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.AuthResult, error) {
	identity, err := u.googleVerifier.Verify(ctx, req.Credential)
	if err != nil {
		if errors.Is(err, google.ErrInvalidCredential) || errors.Is(err, google.ErrAudienceMismatch) {
			return nil, ErrInvalidGoogleCredential
		}
		u.log.Warnf("Failed to verify google credential: %+v", err)
		return nil, ErrGoogleUnavailable
	}
	if identity.Email == "" || identity.Subject == "" {
		return nil, ErrInvalidGoogleCredential
	}

	user, err := u.userRepo.FindByEmail(ctx, identity.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil {
		user, err = u.createGoogleUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	} else if user.GoogleID == nil {
		user.LinkGoogle(identity.Subject, identity.Picture)
		if err := u.userRepo.Update(ctx, user); err != nil {
			u.log.Warnf("Failed to link google account for user %s: %+v", user.ID, err)
			return nil, err
		}
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserGoogleLogin, nil)

	return u.issue(user)
}

func (u *authUsecase) createGoogleUser(ctx context.Context, identity *google.Identity) (*entity.User, error) {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}

	user := &entity.User{
		Name:  name,
		Email: identity.Email,
		Role:  entity.RoleUser,
	}
	user.LinkGoogle(identity.Subject, identity.Picture)

	if err := u.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, repository.ErrDuplicateKey) {
			u.log.Warnf("Failed to create google user: %+v", err)
			return nil, err
		}
		// A concurrent sign-in created the account first
		existing, findErr := u.userRepo.FindByEmail(ctx, identity.Email)
		if findErr != nil || existing == nil {
			u.log.Warnf("Failed to load concurrently created user: %+v", findErr)
			return nil, err
		}
		return existing, nil
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserRegister, entity.JSON{"email": user.Email, "provider": "google"})
	return user, nil
}

func (u *authUsecase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}

	if err := u.sessionService.Revoke(ctx, claims); err != nil {
		u.log.Warnf("Failed to revoke session %s: %+v", claims.TokenID, err)
		return err
	}

	u.auditService.Record(ctx, &claims.UserID, entity.AuditActionUserLogout, nil)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issue(user *entity.User) (*dto.AuthResult, error) {
	token, _, err := u.sessionService.Issue(user)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	return &dto.AuthResult{
		User:  converter.UserToResponse(user),
		Token: token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
