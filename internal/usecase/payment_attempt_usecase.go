package usecase

import (
	"context"
	"errors"

	"quickcare/internal/converter"
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var ErrInvalidAttemptStatus = errors.New("invalid payment attempt status")

type PaymentAttemptUsecase interface {
	// List returns attempts with the given status. An empty status lists the
	// reconciliation queue: pending and reconciliation_required attempts.
	List(ctx context.Context, status string) (*dto.PaymentAttemptListResponse, error)
}

type paymentAttemptUsecase struct {
	log         *logrus.Logger
	attemptRepo repository.PaymentAttemptRepository
}

func NewPaymentAttemptUsecase(log *logrus.Logger, attemptRepo repository.PaymentAttemptRepository) PaymentAttemptUsecase {
	return &paymentAttemptUsecase{
		log:         log,
		attemptRepo: attemptRepo,
	}
}

func (u *paymentAttemptUsecase) List(ctx context.Context, status string) (*dto.PaymentAttemptListResponse, error) {
	statuses := []entity.PaymentAttemptStatus{
		entity.PaymentAttemptPending,
		entity.PaymentAttemptReconciliationRequired,
	}
	if status != "" {
		s := entity.PaymentAttemptStatus(status)
		switch s {
		case entity.PaymentAttemptPending, entity.PaymentAttemptCompleted,
			entity.PaymentAttemptFailed, entity.PaymentAttemptReconciliationRequired:
			statuses = []entity.PaymentAttemptStatus{s}
		default:
			return nil, ErrInvalidAttemptStatus
		}
	}

	attempts, err := u.attemptRepo.FindByStatus(ctx, statuses...)
	if err != nil {
		u.log.Warnf("Failed to find payment attempts: %+v", err)
		return nil, err
	}

	return &dto.PaymentAttemptListResponse{
		Attempts: converter.PaymentAttemptsToResponses(attempts),
		Total:    len(attempts),
	}, nil
}
