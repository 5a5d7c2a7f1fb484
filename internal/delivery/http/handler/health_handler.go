package handler

import (
	"net/http"

	"quickcare/internal/usecase"
	"quickcare/pkg/response"
)

type HealthHandler struct {
	healthUsecase usecase.HealthUsecase
}

func NewHealthHandler(healthUsecase usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{
		healthUsecase: healthUsecase,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	health, ok := h.healthUsecase.Check(r.Context())
	if !ok {
		response.JSON(w, http.StatusServiceUnavailable, health)
		return
	}
	response.JSON(w, http.StatusOK, health)
}
