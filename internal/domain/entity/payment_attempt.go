package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentAttemptStatus tracks a remote pay call from before it is issued
// until its local appointment is recorded.
type PaymentAttemptStatus string

const (
	PaymentAttemptPending                PaymentAttemptStatus = "pending"
	PaymentAttemptCompleted              PaymentAttemptStatus = "completed"
	PaymentAttemptFailed                 PaymentAttemptStatus = "failed"
	PaymentAttemptReconciliationRequired PaymentAttemptStatus = "reconciliation_required"
)

// PaymentAttempt is the outbox row written before a hospital is asked to
// charge the user. Its ID doubles as the idempotency key sent upstream.
// Rows left pending or reconciliation_required mean the user may have been
// charged without a local appointment.
type PaymentAttempt struct {
	ID            uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	HospitalID    string               `gorm:"type:varchar(64);not null" json:"hospital_id"`
	DoctorID      string               `gorm:"type:varchar(128);not null" json:"doctor_id"`
	Payload       JSON                 `gorm:"type:jsonb" json:"payload,omitempty"`
	Status        PaymentAttemptStatus `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	TransactionID string               `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`
	AppointmentID *uuid.UUID           `gorm:"type:uuid" json:"appointment_id,omitempty"`
	LastError     string               `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}

// NeedsReconciliation reports whether an operator has to check the hospital
// backend for this attempt.
func (p *PaymentAttempt) NeedsReconciliation() bool {
	return p.Status == PaymentAttemptReconciliationRequired
}
