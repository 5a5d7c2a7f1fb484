package dto

import "quickcare/internal/infrastructure/hospital"

// Response DTOs

type HospitalListResponse struct {
	Hospitals []string `json:"hospitals"`
}

type HospitalStatusResponse struct {
	Hospitals  []hospital.ProbeResult `json:"hospitals"`
	Accessible int                    `json:"accessible"`
	Total      int                    `json:"total"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
