package converter

import (
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
)

func PaymentAttemptsToResponses(attempts []entity.PaymentAttempt) []dto.PaymentAttemptResponse {
	responses := make([]dto.PaymentAttemptResponse, len(attempts))
	for i, a := range attempts {
		responses[i] = dto.PaymentAttemptResponse{
			ID:            a.ID,
			UserID:        a.UserID,
			HospitalID:    a.HospitalID,
			DoctorID:      a.DoctorID,
			Payload:       a.Payload,
			Status:        string(a.Status),
			TransactionID: a.TransactionID,
			AppointmentID: a.AppointmentID,
			LastError:     a.LastError,
			CreatedAt:     a.CreatedAt,
			UpdatedAt:     a.UpdatedAt,
		}
	}
	return responses
}
