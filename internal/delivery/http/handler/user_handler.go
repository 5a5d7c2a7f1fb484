package handler

import (
	"net/http"

	"quickcare/internal/delivery/http/middleware"
	"quickcare/internal/usecase"
	"quickcare/pkg/response"
)

type UserHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	reviewUsecase      usecase.ReviewUsecase
	userUsecase        usecase.UserUsecase
}

func NewUserHandler(appointmentUsecase usecase.AppointmentUsecase, reviewUsecase usecase.ReviewUsecase, userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		appointmentUsecase: appointmentUsecase,
		reviewUsecase:      reviewUsecase,
		userUsecase:        userUsecase,
	}
}

func (h *UserHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	appointments, err := h.appointmentUsecase.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *UserHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	reviews, err := h.reviewUsecase.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *UserHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	dashboard, err := h.userUsecase.Dashboard(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.Unauthorized(w, "Not authenticated")
		default:
			response.InternalServerError(w, "Failed to load dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
