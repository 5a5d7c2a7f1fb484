package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quickcare/internal/converter"
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"
	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultCurrency      = "INR"
	defaultPaymentMethod = "mock"

	// Timeout for bookkeeping writes made after the remote charge
	reconcileWriteTimeout = 5 * time.Second
)

var (
	ErrInvalidPatientDetails = errors.New("invalid patient details")
	// ErrPaymentOutcomeUnknown means the hospital may or may not have charged
	// the user. The attempt is queued for reconciliation and must not be
	// retried automatically.
	ErrPaymentOutcomeUnknown = errors.New("payment outcome unknown")
	// ErrReconciliationRequired means the hospital charged the user but the
	// local appointment could not be recorded.
	ErrReconciliationRequired = errors.New("payment succeeded but appointment could not be recorded")
)

// ReconciliationError carries the identifiers support needs to match a
// remote charge with its missing appointment.
type ReconciliationError struct {
	TransactionID string
	AttemptID     uuid.UUID
	Err           error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s (transaction %s, attempt %s): %v", ErrReconciliationRequired, e.TransactionID, e.AttemptID, e.Err)
}

func (e *ReconciliationError) Is(target error) bool {
	return target == ErrReconciliationRequired
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

type BookingUsecase interface {
	Book(ctx context.Context, userID uuid.UUID, hospitalID, doctorID string, details *dto.PatientDetails) (*dto.BookingConfirmationResponse, error)
}

type bookingUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	attemptRepo  repository.PaymentAttemptRepository
	hospitals    HospitalGateway
	auditService service.AuditService
}

func NewBookingUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	attemptRepo repository.PaymentAttemptRepository,
	hospitals HospitalGateway,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		hospitals:    hospitals,
		auditService: auditService,
	}
}

// Book charges the user at the hospital and records the appointment.
//
// Flow:
// 1. Require a known user and complete patient details
// 2. Write a pending payment attempt (outbox) before any network call
// 3. Call the hospital pay endpoint exactly once
// 4. Rejected -> attempt failed, no appointment
// 5. Timeout/unreachable/garbled success -> attempt needs reconciliation
// 6. Success -> appointment insert + attempt completed in one transaction
// 7. If step 6 fails the user is charged without a record: flag the attempt
// for reconciliation and log it at error level
func (u *bookingUsecase) Book(ctx context.Context, userID uuid.UUID, hospitalID, doctorID string, details *dto.PatientDetails) (*dto.BookingConfirmationResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthenticationRequired
	}
	if err := validatePatientDetails(details); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doctorID) == "" {
		return nil, fmt.Errorf("%w: doctor is required", ErrInvalidPatientDetails)
	}
	if _, err := u.hospitals.Resolve(hospitalID); err != nil {
		return nil, err
	}
	hospitalID = normalizeHospitalID(hospitalID)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthenticationRequired
	}

	payReq := &hospital.PaymentRequest{
		Name:          strings.TrimSpace(details.Name),
		Age:           details.Age,
		Gender:        details.Gender,
		Reason:        strings.TrimSpace(details.Reason),
		Location:      strings.TrimSpace(details.Location),
		PaymentMethod: details.PaymentMethod,
		Amount:        details.Amount,
		Currency:      details.Currency,
	}
	if payReq.PaymentMethod == "" {
		payReq.PaymentMethod = defaultPaymentMethod
	}

	attempt := &entity.PaymentAttempt{
		ID:         uuid.New(),
		UserID:     user.ID,
		HospitalID: hospitalID,
		DoctorID:   doctorID,
		Payload:    paymentPayload(payReq),
		Status:     entity.PaymentAttemptPending,
	}
	if err := u.attemptRepo.Create(ctx, attempt); err != nil {
		u.log.Warnf("Failed to record payment attempt, not calling hospital: %+v", err)
		return nil, err
	}

	// Once the charge is requested the flow runs to completion even if the
	// client goes away.
	payCtx := context.WithoutCancel(ctx)
	logger := u.log.WithFields(logrus.Fields{
		"attempt_id":  attempt.ID.String(),
		"user_id":     user.ID.String(),
		"hospital_id": hospitalID,
		"doctor_id":   doctorID,
	})

	result, err := u.hospitals.Pay(payCtx, hospitalID, doctorID, payReq, attempt.ID.String())
	if err != nil {
		if hospital.IsAmbiguous(err) {
			logger.Errorf("Payment outcome unknown, attempt queued for reconciliation: %+v", err)
			u.markReconciliation(payCtx, logger, attempt.ID, "", err.Error())
			return nil, fmt.Errorf("%w: %w", ErrPaymentOutcomeUnknown, err)
		}

		logger.Warnf("Payment rejected: %+v", err)
		markCtx, cancel := context.WithTimeout(payCtx, reconcileWriteTimeout)
		defer cancel()
		if markErr := u.attemptRepo.MarkFailed(markCtx, attempt.ID, err.Error()); markErr != nil {
			logger.Warnf("Failed to mark payment attempt failed: %+v", markErr)
		}
		return nil, err
	}

	appointment := &entity.Appointment{
		ID:                uuid.New(),
		UserID:            user.ID,
		UserName:          user.Name,
		UserEmail:         user.Email,
		HospitalID:        hospitalID,
		DoctorID:          doctorID,
		DoctorName:        result.DoctorName,
		Specialization:    result.Specialization,
		PatientName:       payReq.Name,
		PatientAge:        payReq.Age,
		PatientGender:     payReq.Gender,
		Reason:            payReq.Reason,
		Location:          payReq.Location,
		Fee:               result.Amount,
		Currency:          result.Currency,
		TransactionID:     result.TransactionID,
		QueuePosition:     result.QueuePosition,
		EstimatedWaitTime: string(result.EstimatedWaitTime),
		Status:            entity.AppointmentStatusBooked,
		PaymentStatus:     entity.PaymentStatusCompleted,
	}
	if appointment.Fee.IsZero() && details.Amount != nil {
		appointment.Fee = *details.Amount
	}
	if appointment.Currency == "" {
		appointment.Currency = firstNonEmpty(details.Currency, defaultCurrency)
	}

	if err := u.attemptRepo.Complete(payCtx, attempt.ID, appointment); err != nil {
		logger = logger.WithField("transaction_id", result.TransactionID)
		logger.Errorf("CRITICAL: user charged but appointment not recorded, reconciliation required: %+v", err)
		u.markReconciliation(payCtx, logger, attempt.ID, result.TransactionID, err.Error())
		return nil, &ReconciliationError{
			TransactionID: result.TransactionID,
			AttemptID:     attempt.ID,
			Err:           err,
		}
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"hospital_id":    hospitalID,
		"doctor_id":      doctorID,
		"transaction_id": result.TransactionID,
	})

	logger.Infof("Appointment booked: id=%s, transaction=%s, queue=%d", appointment.ID, result.TransactionID, result.QueuePosition)

	return &dto.BookingConfirmationResponse{
		TransactionID:     result.TransactionID,
		QueuePosition:     result.QueuePosition,
		EstimatedWaitTime: string(result.EstimatedWaitTime),
		Amount:            appointment.Fee,
		Currency:          appointment.Currency,
		Appointment:       converter.AppointmentToResponse(appointment),
	}, nil
}

func (u *bookingUsecase) markReconciliation(ctx context.Context, logger *logrus.Entry, attemptID uuid.UUID, transactionID, reason string) {
	markCtx, cancel := context.WithTimeout(ctx, reconcileWriteTimeout)
	defer cancel()
	if err := u.attemptRepo.MarkReconciliationRequired(markCtx, attemptID, transactionID, reason); err != nil {
		logger.Errorf("CRITICAL: failed to flag payment attempt for reconciliation: %+v", err)
	}
}

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

func validatePatientDetails(details *dto.PatientDetails) error {
	if details == nil {
		return fmt.Errorf("%w: patient details are required", ErrInvalidPatientDetails)
	}
	switch {
	case strings.TrimSpace(details.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPatientDetails)
	case details.Age <= 0:
		return fmt.Errorf("%w: age must be a positive number", ErrInvalidPatientDetails)
	case !validGenders[details.Gender]:
		return fmt.Errorf("%w: gender must be one of male, female, other", ErrInvalidPatientDetails)
	case strings.TrimSpace(details.Reason) == "":
		return fmt.Errorf("%w: reason is required", ErrInvalidPatientDetails)
	case strings.TrimSpace(details.Location) == "":
		return fmt.Errorf("%w: location is required", ErrInvalidPatientDetails)
	case details.Amount != nil && details.Amount.IsNegative():
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidPatientDetails)
	}
	return nil
}

func paymentPayload(req *hospital.PaymentRequest) entity.JSON {
	payload := entity.JSON{
		"name":          req.Name,
		"age":           req.Age,
		"gender":        req.Gender,
		"reason":        req.Reason,
		"location":      req.Location,
		"paymentMethod": req.PaymentMethod,
	}
	if req.Amount != nil {
		payload["amount"] = req.Amount.String()
	}
	if req.Currency != "" {
		payload["currency"] = req.Currency
	}
	return payload
}

// normalizeHospitalID matches the directory's case-insensitive keys
func normalizeHospitalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
