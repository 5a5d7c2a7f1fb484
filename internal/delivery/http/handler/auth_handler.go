package handler

import (
	"encoding/json"
	"net/http"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/delivery/http/middleware"
	"quickcare/internal/service"
	"quickcare/internal/usecase"
	"quickcare/pkg/response"
	"quickcare/pkg/validator"
)

type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	sessionService *service.SessionService
	validator      *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, sessionService *service.SessionService, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		sessionService: sessionService,
		validator:      validator,
	}
}

// Signup handles account creation
// @Summary Create an account
// @Description Create an account with name, email, password and optional phone; sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.Signup(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrWeakPassword:
			response.Error(w, http.StatusBadRequest, "Password must be at least 6 characters long", nil)
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "User with this email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create account")
		}
		return
	}

	http.SetCookie(w, h.sessionService.Cookie(result.Token))
	response.Success(w, http.StatusOK, "Account created successfully", result.User)
}

// Login handles email and password sign-in
// @Summary Login user
// @Description Login with email and password; sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	http.SetCookie(w, h.sessionService.Cookie(result.Token))
	response.Success(w, http.StatusOK, "Login successful", result.User)
}

// GoogleLogin handles Google sign-in
// @Summary Login with Google
// @Description Verify a Google ID token, find or create the account and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "Google credential"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Google credential is required", nil)
		return
	}

	result, err := h.authUsecase.GoogleLogin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidGoogleCredential:
			response.Error(w, http.StatusBadRequest, "Invalid Google credential", nil)
		case usecase.ErrGoogleUnavailable:
			response.Error(w, http.StatusBadGateway, "Google sign-in is temporarily unavailable", nil)
		default:
			response.InternalServerError(w, "Google authentication failed")
		}
		return
	}

	http.SetCookie(w, h.sessionService.Cookie(result.Token))
	response.Success(w, http.StatusOK, "Google login successful", result.User)
}

// Logout handles session revocation
// @Summary Logout user
// @Description Revoke the current session and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		if err := h.authUsecase.Logout(r.Context(), claims); err != nil {
			response.InternalServerError(w, "Failed to logout")
			return
		}
	}

	http.SetCookie(w, h.sessionService.ClearCookie())
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser handles getting current user info
// @Summary Get current user
// @Description Get authenticated user information
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.Unauthorized(w, "Not authenticated")
		default:
			response.InternalServerError(w, "Failed to get user info")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
