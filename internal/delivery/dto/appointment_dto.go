package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// PatientDetails is what the booking form collects about the patient.
type PatientDetails struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Age           int              `json:"age" validate:"gt=0,lte=150"`
	Gender        string           `json:"gender" validate:"required,oneof=male female other"`
	Reason        string           `json:"reason" validate:"required,max=2000"`
	Location      string           `json:"location" validate:"required,max=255"`
	PaymentMethod string           `json:"paymentMethod" validate:"omitempty,max=32"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency" validate:"omitempty,len=3"`
}

// PayRequest is the body of POST /api/hospitals/{id}/doctors/{docId}/pay.
type PayRequest struct {
	PatientDetails
}

// CreateAppointmentRequest is the body of POST /api/appointments.
type CreateAppointmentRequest struct {
	HospitalID string `json:"hospitalId" validate:"required,max=64"`
	DoctorID   string `json:"doctorId" validate:"required,max=128"`
	PatientDetails
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"userId"`
	UserName          string          `json:"userName"`
	UserEmail         string          `json:"userEmail"`
	HospitalID        string          `json:"hospitalId"`
	DoctorID          string          `json:"doctorId"`
	DoctorName        string          `json:"doctorName"`
	Specialization    string          `json:"specialization"`
	PatientName       string          `json:"patientName"`
	PatientAge        int             `json:"patientAge"`
	PatientGender     string          `json:"patientGender"`
	Reason            string          `json:"reason"`
	Location          string          `json:"location"`
	Fee               decimal.Decimal `json:"fee"`
	Currency          string          `json:"currency"`
	TransactionID     string          `json:"transactionId"`
	QueuePosition     int             `json:"queuePosition"`
	EstimatedWaitTime string          `json:"estimatedWaitTime"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type BookingConfirmationResponse struct {
	TransactionID     string               `json:"transactionId"`
	QueuePosition     int                  `json:"queuePosition"`
	EstimatedWaitTime string               `json:"estimatedWaitTime"`
	Amount            decimal.Decimal      `json:"amount"`
	Currency          string               `json:"currency"`
	Appointment       *AppointmentResponse `json:"appointment"`
}
