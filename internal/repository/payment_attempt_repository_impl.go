package repository

import (
	"context"
	"errors"
	"fmt"

	"quickcare/internal/domain/entity"
	domainRepo "quickcare/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errAttemptNotPending is returned when an attempt was already moved out of
// pending by someone else.
var errAttemptNotPending = errors.New("payment attempt is not pending")

type paymentAttemptRepository struct {
	db *gorm.DB
}

func NewPaymentAttemptRepository(db *gorm.DB) domainRepo.PaymentAttemptRepository {
	return &paymentAttemptRepository{db: db}
}

func (r *paymentAttemptRepository) Create(ctx context.Context, attempt *entity.PaymentAttempt) error {
	return translateError(r.db.WithContext(ctx).Create(attempt).Error)
}

func (r *paymentAttemptRepository) Complete(ctx context.Context, attemptID uuid.UUID, appointment *entity.Appointment) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := tx.Create(appointment).Error; err != nil {
		return translateError(err)
	}

	result := tx.Model(&entity.PaymentAttempt{}).
		Where("id = ? AND status = ?", attemptID, entity.PaymentAttemptPending).
		Updates(map[string]interface{}{
			"status":         entity.PaymentAttemptCompleted,
			"transaction_id": appointment.TransactionID,
			"appointment_id": appointment.ID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("complete attempt %s: %w", attemptID, errAttemptNotPending)
	}

	return tx.Commit().Error
}

func (r *paymentAttemptRepository) MarkFailed(ctx context.Context, attemptID uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&entity.PaymentAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]interface{}{
			"status":     entity.PaymentAttemptFailed,
			"last_error": reason,
		}).Error
}

func (r *paymentAttemptRepository) MarkReconciliationRequired(ctx context.Context, attemptID uuid.UUID, transactionID, reason string) error {
	updates := map[string]interface{}{
		"status":     entity.PaymentAttemptReconciliationRequired,
		"last_error": reason,
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	return r.db.WithContext(ctx).Model(&entity.PaymentAttempt{}).
		Where("id = ?", attemptID).
		Updates(updates).Error
}

func (r *paymentAttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentAttempt, error) {
	var attempt entity.PaymentAttempt
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *paymentAttemptRepository) FindByStatus(ctx context.Context, statuses ...entity.PaymentAttemptStatus) ([]entity.PaymentAttempt, error) {
	var attempts []entity.PaymentAttempt
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
