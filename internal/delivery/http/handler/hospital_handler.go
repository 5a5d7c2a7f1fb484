package handler

import (
	"encoding/json"
	"net/http"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/delivery/http/middleware"
	"quickcare/internal/usecase"
	"quickcare/pkg/response"
	"quickcare/pkg/validator"

	"github.com/gorilla/mux"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	bookingUsecase  usecase.BookingUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		bookingUsecase:  bookingUsecase,
		validator:       validator,
	}
}

// ListHospitals returns the configured hospital ids
// @Summary List hospitals
// @Tags Hospitals
// @Produce json
// @Success 200 {object} response.Response
// @Router /hospitals [get]
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", h.hospitalUsecase.ListHospitals())
}

// CheckConnectivity probes every hospital backend
// @Summary Hospital connectivity
// @Tags Hospitals
// @Produce json
// @Success 200 {object} response.Response
// @Router /hospitals/status [get]
func (h *HospitalHandler) CheckConnectivity(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Hospital connectivity checked", h.hospitalUsecase.CheckConnectivity(r.Context()))
}

// ListDoctors proxies the hospital's doctors list
// @Summary List doctors of a hospital
// @Tags Hospitals
// @Produce json
// @Param id path string true "Hospital ID"
// @Success 200 {array} object
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /hospitals/{id}/doctors [get]
func (h *HospitalHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	body, err := h.hospitalUsecase.ListDoctors(r.Context(), vars["id"])
	if err != nil {
		writeHospitalError(w, err, "Failed to fetch doctors")
		return
	}

	response.Raw(w, http.StatusOK, body)
}

// QueueStatus proxies a patient's queue position
// @Summary Queue status
// @Tags Hospitals
// @Produce json
// @Param id path string true "Hospital ID"
// @Param docId path string true "Doctor ID"
// @Param name query string true "Patient name"
// @Success 200 {object} object
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hospitals/{id}/doctors/{docId}/status [get]
func (h *HospitalHandler) QueueStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	body, err := h.hospitalUsecase.QueueStatus(r.Context(), vars["id"], vars["docId"], r.URL.Query().Get("name"))
	if err != nil {
		writeHospitalError(w, err, "Failed to fetch queue status")
		return
	}

	response.Raw(w, http.StatusOK, body)
}

// Pay books an appointment by charging at the hospital
// @Summary Pay and book
// @Description Charge at the hospital backend and record the appointment for the session user
// @Tags Hospitals
// @Accept json
// @Produce json
// @Param id path string true "Hospital ID"
// @Param docId path string true "Doctor ID"
// @Param request body dto.PayRequest true "Booking payload"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 504 {object} response.Response
// @Router /hospitals/{id}/doctors/{docId}/pay [post]
func (h *HospitalHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req dto.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	vars := mux.Vars(r)
	confirmation, err := h.bookingUsecase.Book(r.Context(), userID, vars["id"], vars["docId"], &req.PatientDetails)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Payment successful", confirmation)
}
