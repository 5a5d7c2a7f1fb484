package usecase

import (
	"context"
	"encoding/json"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/infrastructure/hospital"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentProbes bounds the connectivity check fan-out
const maxConcurrentProbes = 8

type HospitalUsecase interface {
	ListHospitals() *dto.HospitalListResponse
	ListDoctors(ctx context.Context, hospitalID string) (json.RawMessage, error)
	QueueStatus(ctx context.Context, hospitalID, doctorID, patientName string) (json.RawMessage, error)
	CheckConnectivity(ctx context.Context) *dto.HospitalStatusResponse
}

type hospitalUsecase struct {
	log       *logrus.Logger
	hospitals HospitalGateway
}

func NewHospitalUsecase(log *logrus.Logger, hospitals HospitalGateway) HospitalUsecase {
	return &hospitalUsecase{
		log:       log,
		hospitals: hospitals,
	}
}

func (u *hospitalUsecase) ListHospitals() *dto.HospitalListResponse {
	return &dto.HospitalListResponse{Hospitals: u.hospitals.HospitalIDs()}
}

func (u *hospitalUsecase) ListDoctors(ctx context.Context, hospitalID string) (json.RawMessage, error) {
	body, err := u.hospitals.ListDoctors(ctx, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list doctors for hospital %s: %+v", hospitalID, err)
		return nil, err
	}
	return body, nil
}

func (u *hospitalUsecase) QueueStatus(ctx context.Context, hospitalID, doctorID, patientName string) (json.RawMessage, error) {
	body, err := u.hospitals.QueueStatus(ctx, hospitalID, doctorID, patientName)
	if err != nil {
		u.log.Warnf("Failed to get queue status at hospital %s for doctor %s: %+v", hospitalID, doctorID, err)
		return nil, err
	}
	return body, nil
}

// CheckConnectivity probes every configured hospital concurrently. Results
// keep the directory's id order.
func (u *hospitalUsecase) CheckConnectivity(ctx context.Context) *dto.HospitalStatusResponse {
	ids := u.hospitals.HospitalIDs()
	results := make([]hospital.ProbeResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = u.hospitals.Probe(gctx, id)
			return nil
		})
	}
	g.Wait()

	accessible := 0
	for _, r := range results {
		if r.Accessible {
			accessible++
		} else {
			u.log.Warnf("Hospital %s is not accessible: %s", r.HospitalID, r.Error)
		}
	}

	return &dto.HospitalStatusResponse{
		Hospitals:  results,
		Accessible: accessible,
		Total:      len(results),
	}
}
