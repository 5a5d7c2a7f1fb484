package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the visit lifecycle of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked     AppointmentStatus = "booked"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// PaymentStatus represents the state of the charge behind an appointment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Appointment is the local record of a visit paid for at a hospital backend.
// HospitalID is a key into the hospital directory, not a foreign key.
// TransactionID is issued by the hospital's pay call and never changes.
type Appointment struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName          string            `gorm:"type:varchar(255);not null" json:"user_name"`
	UserEmail         string            `gorm:"type:varchar(255);not null" json:"user_email"`
	HospitalID        string            `gorm:"type:varchar(64);not null;index" json:"hospital_id"`
	DoctorID          string            `gorm:"type:varchar(128);not null" json:"doctor_id"`
	DoctorName        string            `gorm:"type:varchar(255)" json:"doctor_name"`
	Specialization    string            `gorm:"type:varchar(255)" json:"specialization"`
	PatientName       string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientAge        int               `gorm:"not null" json:"patient_age"`
	PatientGender     string            `gorm:"type:varchar(16);not null" json:"patient_gender"`
	Reason            string            `gorm:"type:text;not null" json:"reason"`
	Location          string            `gorm:"type:varchar(255);not null" json:"location"`
	Fee               decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"fee"`
	Currency          string            `gorm:"type:varchar(8);not null" json:"currency"`
	TransactionID     string            `gorm:"type:varchar(128);uniqueIndex;not null;<-:create" json:"transaction_id"`
	QueuePosition     int               `gorm:"not null" json:"queue_position"`
	EstimatedWaitTime string            `gorm:"type:varchar(64)" json:"estimated_wait_time"`
	Status            AppointmentStatus `gorm:"type:varchar(16);not null;default:'booked';index" json:"status"`
	PaymentStatus     PaymentStatus     `gorm:"type:varchar(16);not null;default:'pending'" json:"payment_status"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsBookable reports whether the appointment is backed by a remote charge.
func (a *Appointment) IsBookable() bool {
	return a.TransactionID != ""
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsFinished checks if the visit reached a terminal status
func (a *Appointment) IsFinished() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}
