package usecase

import (
	"context"

	"quickcare/internal/converter"
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type UserUsecase interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

type userUsecase struct {
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	reviewRepo      repository.ReviewRepository
}

func NewUserUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	reviewRepo repository.ReviewRepository,
) UserUsecase {
	return &userUsecase{
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		reviewRepo:      reviewRepo,
	}
}

// Dashboard loads the profile, appointments and reviews of a user in
// parallel.
func (u *userUsecase) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	var (
		user         *entity.User
		appointments []entity.Appointment
		reviews      []entity.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = u.userRepo.FindByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = u.appointmentRepo.FindByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = u.reviewRepo.FindByUserID(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load dashboard for user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.DashboardResponse{
		User:         converter.UserToResponse(user),
		Appointments: converter.AppointmentsToResponses(appointments),
		Reviews:      converter.ReviewsToResponses(reviews),
	}, nil
}
