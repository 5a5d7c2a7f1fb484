package handler

import (
	"net/http"

	"quickcare/internal/usecase"
	"quickcare/pkg/response"
)

type PaymentAttemptHandler struct {
	paymentAttemptUsecase usecase.PaymentAttemptUsecase
}

func NewPaymentAttemptHandler(paymentAttemptUsecase usecase.PaymentAttemptUsecase) *PaymentAttemptHandler {
	return &PaymentAttemptHandler{
		paymentAttemptUsecase: paymentAttemptUsecase,
	}
}

// GetPaymentAttempts lists the reconciliation queue, or attempts of one
// status when ?status= is given.
func (h *PaymentAttemptHandler) GetPaymentAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.paymentAttemptUsecase.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidAttemptStatus:
			response.Error(w, http.StatusBadRequest, "Invalid payment attempt status", nil)
		default:
			response.InternalServerError(w, "Failed to get payment attempts")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment attempts retrieved successfully", attempts)
}
