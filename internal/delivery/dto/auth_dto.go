package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	IsGoogleUser bool      `json:"isGoogleUser"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthResult is returned by every sign-in path; Token goes into the session
// cookie and never into the response body.
type AuthResult struct {
	User  *UserResponse
	Token string
}
