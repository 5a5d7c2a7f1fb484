package usecase

import (
	"context"

	"quickcare/internal/converter"
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	// List returns every appointment for an admin and the caller's own
	// appointments for anyone else.
	List(ctx context.Context, userID uuid.UUID, role string) (*dto.AppointmentListResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentUsecase(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

func (u *appointmentUsecase) List(ctx context.Context, userID uuid.UUID, role string) (*dto.AppointmentListResponse, error) {
	if role != entity.RoleAdmin {
		return u.ListByUser(ctx, userID)
	}

	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListByUser(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
