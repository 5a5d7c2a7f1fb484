package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/delivery/http/middleware"
	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/usecase"
	"quickcare/pkg/response"
	"quickcare/pkg/validator"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

// GetReviews lists a hospital's reviews, newest first
// @Summary List hospital reviews
// @Tags Reviews
// @Produce json
// @Param id path string true "Hospital ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hospitals/{id}/review [get]
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reviews, err := h.reviewUsecase.ListByHospital(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, hospital.ErrHospitalNotFound) {
			response.Fail(w, http.StatusNotFound, "Hospital not found", nil)
			return
		}
		response.InternalServerError(w, "Failed to fetch reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// SubmitReview stores the session user's review of a hospital
// @Summary Submit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Hospital ID"
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /hospitals/{id}/review [post]
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.Comment = strings.TrimSpace(req.Comment)

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	vars := mux.Vars(r)
	review, err := h.reviewUsecase.Submit(r.Context(), userID, vars["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRating), errors.Is(err, usecase.ErrCommentTooLong):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrReviewAlreadyExists):
			response.Error(w, http.StatusConflict, "You have already reviewed this hospital", nil)
		case errors.Is(err, usecase.ErrAuthenticationRequired), errors.Is(err, usecase.ErrUserNotFound):
			response.Unauthorized(w, "Not authenticated")
		case errors.Is(err, hospital.ErrHospitalNotFound):
			response.Fail(w, http.StatusNotFound, "Hospital not found", nil)
		default:
			response.InternalServerError(w, "Failed to submit review")
		}
		return
	}

	response.Success(w, http.StatusOK, "Review submitted", review)
}
