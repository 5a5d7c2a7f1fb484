package dto

import (
	"time"

	"quickcare/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type PaymentAttemptResponse struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"userId"`
	HospitalID    string      `json:"hospitalId"`
	DoctorID      string      `json:"doctorId"`
	Payload       entity.JSON `json:"payload,omitempty"`
	Status        string      `json:"status"`
	TransactionID string      `json:"transactionId,omitempty"`
	AppointmentID *uuid.UUID  `json:"appointmentId,omitempty"`
	LastError     string      `json:"lastError,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type PaymentAttemptListResponse struct {
	Attempts []PaymentAttemptResponse `json:"attempts"`
	Total    int                      `json:"total"`
}
