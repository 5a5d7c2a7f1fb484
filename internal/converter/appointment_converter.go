package converter

import (
	"quickcare/internal/delivery/dto"
	"quickcare/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                appointment.ID,
		UserID:            appointment.UserID,
		UserName:          appointment.UserName,
		UserEmail:         appointment.UserEmail,
		HospitalID:        appointment.HospitalID,
		DoctorID:          appointment.DoctorID,
		DoctorName:        appointment.DoctorName,
		Specialization:    appointment.Specialization,
		PatientName:       appointment.PatientName,
		PatientAge:        appointment.PatientAge,
		PatientGender:     appointment.PatientGender,
		Reason:            appointment.Reason,
		Location:          appointment.Location,
		Fee:               appointment.Fee,
		Currency:          appointment.Currency,
		TransactionID:     appointment.TransactionID,
		QueuePosition:     appointment.QueuePosition,
		EstimatedWaitTime: appointment.EstimatedWaitTime,
		Status:            string(appointment.Status),
		PaymentStatus:     string(appointment.PaymentStatus),
		CreatedAt:         appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
