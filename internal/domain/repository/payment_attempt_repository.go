package repository

import (
	"context"

	"quickcare/internal/domain/entity"

	"github.com/google/uuid"
)

type PaymentAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.PaymentAttempt) error
	// Complete inserts the appointment and marks the attempt completed in a
	// single transaction.
	Complete(ctx context.Context, attemptID uuid.UUID, appointment *entity.Appointment) error
	MarkFailed(ctx context.Context, attemptID uuid.UUID, reason string) error
	MarkReconciliationRequired(ctx context.Context, attemptID uuid.UUID, transactionID, reason string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentAttempt, error)
	FindByStatus(ctx context.Context, statuses ...entity.PaymentAttemptStatus) ([]entity.PaymentAttempt, error)
}
