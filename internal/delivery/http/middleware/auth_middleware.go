package middleware

import (
	"context"
	"net/http"
	"strings"

	"quickcare/internal/service"
	"quickcare/pkg/jwt"
	"quickcare/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	ClaimsKey   contextKey = "claims"
	UserRoleKey contextKey = "user_role"
)

type AuthMiddleware struct {
	sessionService *service.SessionService
}

func NewAuthMiddleware(sessionService *service.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionService,
	}
}

// Authenticate rejects requests without a valid session.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.sessionService.Resolve(r.Context(), m.tokenFromRequest(r))
		if !ok {
			response.Unauthorized(w, "Not authenticated")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), session.Claims)))
	})
}

// Resolve attaches the session when there is one and lets anonymous
// requests through.
func (m *AuthMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, ok := m.sessionService.Resolve(r.Context(), m.tokenFromRequest(r)); ok {
			r = r.WithContext(withClaims(r.Context(), session.Claims))
		}
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest reads the session cookie, falling back to a Bearer
// Authorization header for non-browser clients.
func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(m.sessionService.CookieName()); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the user's role from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

// GetClaimsFromContext extracts the session claims from context
func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok
}
