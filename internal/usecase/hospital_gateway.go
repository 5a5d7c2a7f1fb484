package usecase

import (
	"context"
	"encoding/json"

	"quickcare/internal/infrastructure/hospital"
)

// HospitalGateway is the hospital proxy as seen by the usecases.
// *hospital.Client implements it.
type HospitalGateway interface {
	Resolve(hospitalID string) (string, error)
	HospitalIDs() []string
	ListDoctors(ctx context.Context, hospitalID string) (json.RawMessage, error)
	QueueStatus(ctx context.Context, hospitalID, doctorID, patientName string) (json.RawMessage, error)
	Pay(ctx context.Context, hospitalID, doctorID string, req *hospital.PaymentRequest, attemptID string) (*hospital.PaymentResult, error)
	Probe(ctx context.Context, hospitalID string) hospital.ProbeResult
}

var _ HospitalGateway = (*hospital.Client)(nil)
