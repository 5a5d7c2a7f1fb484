package handler

import (
	"encoding/json"
	"net/http"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/delivery/http/middleware"
	"quickcare/internal/usecase"
	"quickcare/pkg/response"
	"quickcare/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	bookingUsecase     usecase.BookingUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		bookingUsecase:     bookingUsecase,
		validator:          validator,
	}
}

// GetAppointments lists the caller's appointments, or all of them for an admin
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	appointments, err := h.appointmentUsecase.List(r.Context(), userID, role)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CreateAppointment books through the hospital's pay endpoint
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	confirmation, err := h.bookingUsecase.Book(r.Context(), userID, req.HospitalID, req.DoctorID, &req.PatientDetails)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment created successfully", confirmation)
}
