package usecase

import (
	"context"
	"errors"
	"testing"

	"quickcare/internal/testutil"
)

func TestHealthCheck(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	fail := func(ctx context.Context) error { return errors.New("connection refused") }

	healthy, up := NewHealthUsecase(testutil.Logger(), map[string]HealthCheck{"postgres": ok, "redis": ok}).Check(context.Background())
	if !up || healthy.Status != "ok" {
		t.Errorf("expected healthy, got %+v", healthy)
	}

	degraded, up := NewHealthUsecase(testutil.Logger(), map[string]HealthCheck{"postgres": ok, "redis": fail}).Check(context.Background())
	if up || degraded.Status != "degraded" || degraded.Services["redis"] != "down" || degraded.Services["postgres"] != "up" {
		t.Errorf("expected degraded with redis down, got %+v", degraded)
	}
}
