package usecase

import (
	"context"
	"errors"
	"testing"

	"quickcare/internal/domain/entity"
	"quickcare/internal/testutil"

	"github.com/google/uuid"
)

func TestPaymentAttemptList(t *testing.T) {
	store := testutil.NewStore()
	ctx := context.Background()
	repo := store.PaymentAttempts()

	for _, status := range []entity.PaymentAttemptStatus{
		entity.PaymentAttemptPending,
		entity.PaymentAttemptFailed,
		entity.PaymentAttemptReconciliationRequired,
	} {
		if err := repo.Create(ctx, &entity.PaymentAttempt{ID: uuid.New(), UserID: uuid.New(), HospitalID: "hospa", DoctorID: "d1", Status: status}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	uc := NewPaymentAttemptUsecase(testutil.Logger(), repo)

	queue, err := uc.List(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queue.Total != 2 {
		t.Errorf("expected pending and reconciliation_required attempts, got %d", queue.Total)
	}

	failed, err := uc.List(ctx, "failed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failed.Total != 1 || failed.Attempts[0].Status != "failed" {
		t.Errorf("unexpected failed list %+v", failed.Attempts)
	}

	if _, err := uc.List(ctx, "bogus"); !errors.Is(err, ErrInvalidAttemptStatus) {
		t.Errorf("expected ErrInvalidAttemptStatus, got %v", err)
	}
}
