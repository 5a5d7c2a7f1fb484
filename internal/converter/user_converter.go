package converter

import (
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		Avatar:       user.Avatar,
		IsGoogleUser: user.IsGoogleUser,
		CreatedAt:    user.CreatedAt,
	}
}
