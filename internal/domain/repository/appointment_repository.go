package repository

import (
	"context"

	"quickcare/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Appointment, error)
}
