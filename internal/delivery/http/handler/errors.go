package handler

import (
	"errors"
	"net/http"

	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/usecase"
	"quickcare/pkg/response"
)

// writeHospitalError maps hospital proxy failures onto HTTP. failMsg is used
// for upstream rejections without a message of their own.
func writeHospitalError(w http.ResponseWriter, err error, failMsg string) {
	var rejected *hospital.RejectedError
	switch {
	case errors.Is(err, hospital.ErrHospitalNotFound):
		response.Fail(w, http.StatusNotFound, "Hospital not found", nil)
	case errors.Is(err, hospital.ErrPatientNameRequired):
		response.Fail(w, http.StatusBadRequest, "Patient name is required", nil)
	case errors.Is(err, hospital.ErrUpstreamTimeout):
		response.Fail(w, http.StatusGatewayTimeout, "Hospital service timed out", err.Error())
	case errors.Is(err, hospital.ErrUpstreamUnreachable), errors.Is(err, hospital.ErrMalformedResponse):
		response.Fail(w, http.StatusBadGateway, "Hospital service unavailable", err.Error())
	case errors.As(err, &rejected):
		msg := failMsg
		if rejected.Message != "" {
			msg = rejected.Message
		}
		response.Fail(w, rejectedStatus(rejected.StatusCode), msg, rejected.Details)
	default:
		response.Fail(w, http.StatusInternalServerError, failMsg, nil)
	}
}

// rejectedStatus keeps upstream 4xx, turns upstream 5xx into 502 and a 2xx
// refusal (success:false) into 402.
func rejectedStatus(status int) int {
	switch {
	case status >= 400 && status < 500:
		return status
	case status >= 500:
		return http.StatusBadGateway
	default:
		return http.StatusPaymentRequired
	}
}

// writeBookingError maps Book failures. Ambiguous payment outcomes keep the
// proxy's 504/502 so clients know not to retry blindly.
func writeBookingError(w http.ResponseWriter, err error) {
	var recErr *usecase.ReconciliationError
	switch {
	case errors.Is(err, usecase.ErrAuthenticationRequired):
		response.Unauthorized(w, "Not authenticated")
	case errors.Is(err, usecase.ErrInvalidPatientDetails):
		response.Fail(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &recErr):
		response.Fail(w, http.StatusInternalServerError,
			"Payment was received but the appointment could not be saved. Please contact support.",
			map[string]string{
				"transactionId": recErr.TransactionID,
				"attemptId":     recErr.AttemptID.String(),
			})
	case errors.Is(err, usecase.ErrPaymentOutcomeUnknown) && errors.Is(err, hospital.ErrUpstreamTimeout):
		response.Fail(w, http.StatusGatewayTimeout,
			"Payment status unknown: the hospital did not respond in time. Check your appointments before retrying.",
			err.Error())
	case errors.Is(err, usecase.ErrPaymentOutcomeUnknown):
		response.Fail(w, http.StatusBadGateway,
			"Payment status unknown: the hospital could not be reached. Check your appointments before retrying.",
			err.Error())
	default:
		writeHospitalError(w, err, "Payment failed")
	}
}
