package service

import (
	"context"
	"net/http"
	"time"

	"quickcare/config"
	"quickcare/internal/domain/entity"
	"quickcare/pkg/jwt"

	"github.com/sirupsen/logrus"
)

// Session is the identity resolved from a valid session token.
type Session struct {
	Claims *jwt.Claims
	Token  string
}

// SessionService issues session tokens and resolves them back into an
// identity. Resolve never fails: anything that is not a valid, unrevoked
// token is treated as an anonymous request.
type SessionService struct {
	jwtService *jwt.JWTService
	revocation TokenRevocationStore
	cfg        config.SessionConfig
	log        *logrus.Logger
}

func NewSessionService(jwtService *jwt.JWTService, revocation TokenRevocationStore, cfg config.SessionConfig, log *logrus.Logger) *SessionService {
	return &SessionService{
		jwtService: jwtService,
		revocation: revocation,
		cfg:        cfg,
		log:        log,
	}
}

func (s *SessionService) Issue(user *entity.User) (string, *jwt.Claims, error) {
	return s.jwtService.GenerateSessionToken(user.ID, user.Email, user.Name, user.Role)
}

// Resolve returns the session behind token, or false for an anonymous
// request. A revocation store error fails closed.
func (s *SessionService) Resolve(ctx context.Context, token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		s.log.Debugf("Rejected session token: %v", err)
		return nil, false
	}

	if s.revocation != nil {
		revoked, err := s.revocation.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			s.log.Warnf("Failed to check token revocation, treating request as anonymous: %+v", err)
			return nil, false
		}
		if revoked {
			return nil, false
		}
	}

	return &Session{Claims: claims, Token: token}, true
}

// Revoke invalidates the session server-side until its natural expiry.
func (s *SessionService) Revoke(ctx context.Context, claims *jwt.Claims) error {
	if s.revocation == nil || claims == nil {
		return nil
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.revocation.Revoke(ctx, claims.TokenID, expiresAt)
}

// Cookie builds the session cookie carrying token.
func (s *SessionService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.jwtService.GetExpiry().Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie builds a cookie that removes the session from the browser.
func (s *SessionService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *SessionService) CookieName() string {
	return s.cfg.CookieName
}
