package hospital

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrHospitalNotFound means the hospital id is not in the directory.
	ErrHospitalNotFound = errors.New("hospital not found")
	// ErrPatientNameRequired is returned before any upstream call when a
	// queue status lookup has no patient name.
	ErrPatientNameRequired = errors.New("patient name is required")
	// ErrUpstreamTimeout means the hospital backend did not answer in time.
	// For pay calls the charge may or may not have happened.
	ErrUpstreamTimeout = errors.New("hospital backend timed out")
	// ErrUpstreamUnreachable covers DNS and connection failures. For pay
	// calls the charge may or may not have happened.
	ErrUpstreamUnreachable = errors.New("hospital backend unreachable")
	// ErrMalformedResponse means the backend answered 2xx with a body that
	// could not be understood.
	ErrMalformedResponse = errors.New("hospital backend returned a malformed response")
)

// RejectedError is returned when the hospital backend answered and refused
// the request. For pay calls the user was not charged.
type RejectedError struct {
	HospitalID string
	StatusCode int
	Message    string
	// Details is the upstream body: json.RawMessage when it parsed as JSON,
	// the raw text otherwise.
	Details interface{}
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("hospital %s rejected the request with status %d: %s", e.HospitalID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hospital %s rejected the request with status %d", e.HospitalID, e.StatusCode)
}

// IsAmbiguous reports whether err leaves the outcome of a pay call unknown:
// the request may have reached the backend and charged the user.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrUpstreamUnreachable) ||
		errors.Is(err, ErrMalformedResponse)
}

func newRejectedError(hospitalID string, statusCode int, body []byte) *RejectedError {
	rejected := &RejectedError{HospitalID: hospitalID, StatusCode: statusCode}
	if len(body) == 0 {
		return rejected
	}
	if !json.Valid(body) {
		rejected.Details = string(body)
		return rejected
	}

	rejected.Details = json.RawMessage(body)

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		rejected.Message = envelope.Message
		if rejected.Message == "" {
			rejected.Message = envelope.Error
		}
	}
	return rejected
}
