package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"quickcare/internal/converter"
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"
	"quickcare/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong      = errors.New("comment cannot exceed 500 characters")
	ErrReviewAlreadyExists = errors.New("you have already reviewed this hospital")
)

type ReviewUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, hospitalID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByHospital(ctx context.Context, hospitalID string) (*dto.ReviewListResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) (*dto.ReviewListResponse, error)
}

type reviewUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	reviewRepo   repository.ReviewRepository
	hospitals    HospitalGateway
	auditService service.AuditService
}

func NewReviewUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	hospitals HospitalGateway,
	auditService service.AuditService,
) ReviewUsecase {
	return &reviewUsecase{
		log:          log,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
		hospitals:    hospitals,
		auditService: auditService,
	}
}

// Submit stores the user's single review of a hospital. A second review for
// the same hospital is rejected by the storage unique index.
func (u *reviewUsecase) Submit(ctx context.Context, userID uuid.UUID, hospitalID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	if !entity.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) > entity.MaxReviewCommentLen {
		return nil, ErrCommentTooLong
	}
	if _, err := u.hospitals.Resolve(hospitalID); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthenticationRequired
	}

	review := &entity.Review{
		HospitalID: normalizeHospitalID(hospitalID),
		UserID:     user.ID,
		UserName:   user.Name,
		Rating:     req.Rating,
		Comment:    comment,
	}

	if err := u.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrReviewAlreadyExists
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionReviewCreate, entity.JSON{
		"review_id":   review.ID.String(),
		"hospital_id": review.HospitalID,
		"rating":      review.Rating,
	})

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) ListByHospital(ctx context.Context, hospitalID string) (*dto.ReviewListResponse, error) {
	if _, err := u.hospitals.Resolve(hospitalID); err != nil {
		return nil, err
	}

	reviews, err := u.reviewRepo.FindByHospitalID(ctx, normalizeHospitalID(hospitalID))
	if err != nil {
		u.log.Warnf("Failed to find reviews for hospital %s: %+v", hospitalID, err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) ListByUser(ctx context.Context, userID uuid.UUID) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}
