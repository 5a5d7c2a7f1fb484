package repository

import (
	"context"

	"quickcare/internal/domain/entity"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByHospitalID(ctx context.Context, hospitalID string) ([]entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Review, error)
}
