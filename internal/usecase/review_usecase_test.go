package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"quickcare/internal/delivery/dto"
	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/service"
	"quickcare/internal/testutil"
)

func newReviewUsecase(t *testing.T, store *testutil.Store) ReviewUsecase {
	t.Helper()
	client := newHospitalClient(t, http.NotFoundHandler(), hospital.Options{})
	audit := service.NewAuditService(testutil.Logger(), store.AuditLogs())
	return NewReviewUsecase(testutil.Logger(), store.Users(), store.Reviews(), client, audit)
}

func TestSubmitReview_AtMostOncePerHospital(t *testing.T) {
	store := testutil.NewStore()
	user := seedUser(t, store, "Asha", "asha@x.com")
	uc := newReviewUsecase(t, store)
	ctx := context.Background()

	review, err := uc.Submit(ctx, user.ID, "hospa", &dto.CreateReviewRequest{Rating: 5, Comment: "Great"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.UserName != "Asha" {
		t.Errorf("expected denormalized user name, got %q", review.UserName)
	}

	_, err = uc.Submit(ctx, user.ID, "HospA", &dto.CreateReviewRequest{Rating: 1, Comment: "changed my mind"})
	if !errors.Is(err, ErrReviewAlreadyExists) {
		t.Errorf("expected ErrReviewAlreadyExists, got %v", err)
	}

	other := seedUser(t, store, "Ravi", "ravi@x.com")
	if _, err := uc.Submit(ctx, other.ID, "hospa", &dto.CreateReviewRequest{Rating: 4}); err != nil {
		t.Errorf("expected another user to review, got %v", err)
	}
}

func TestSubmitReview_RejectsBeforePersistence(t *testing.T) {
	store := testutil.NewStore()
	user := seedUser(t, store, "Asha", "asha@x.com")
	uc := newReviewUsecase(t, store)
	ctx := context.Background()

	for _, rating := range []int{-1, 0, 6, 100} {
		if _, err := uc.Submit(ctx, user.ID, "hospa", &dto.CreateReviewRequest{Rating: rating}); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	long := strings.Repeat("a", 501)
	if _, err := uc.Submit(ctx, user.ID, "hospa", &dto.CreateReviewRequest{Rating: 3, Comment: long}); !errors.Is(err, ErrCommentTooLong) {
		t.Errorf("expected ErrCommentTooLong, got %v", err)
	}

	if _, err := uc.Submit(ctx, user.ID, "nowhere", &dto.CreateReviewRequest{Rating: 3}); !errors.Is(err, hospital.ErrHospitalNotFound) {
		t.Errorf("expected ErrHospitalNotFound, got %v", err)
	}

	list, err := uc.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("expected nothing persisted, got %d reviews", list.Total)
	}
}

func TestListByHospital_NewestFirst(t *testing.T) {
	store := testutil.NewStore()
	uc := newReviewUsecase(t, store)
	ctx := context.Background()

	first := seedUser(t, store, "First", "first@x.com")
	second := seedUser(t, store, "Second", "second@x.com")
	if _, err := uc.Submit(ctx, first.ID, "hospa", &dto.CreateReviewRequest{Rating: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Submit(ctx, second.ID, "hospa", &dto.CreateReviewRequest{Rating: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := uc.ListByHospital(ctx, "hospa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 2 || list.Reviews[0].UserName != "Second" {
		t.Errorf("expected newest review first, got %+v", list.Reviews)
	}
}

func TestListByHospital_UnknownHospital(t *testing.T) {
	uc := newReviewUsecase(t, testutil.NewStore())

	if _, err := uc.ListByHospital(context.Background(), "nowhere"); !errors.Is(err, hospital.ErrHospitalNotFound) {
		t.Errorf("expected ErrHospitalNotFound, got %v", err)
	}
}
