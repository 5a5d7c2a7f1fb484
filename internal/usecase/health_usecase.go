package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"quickcare/internal/delivery/dto"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	// Check returns the per-dependency status and whether all are up.
	Check(ctx context.Context) (*dto.HealthResponse, bool)
}

type healthUsecase struct {
	log    *logrus.Logger
	checks map[string]HealthCheck
}

func NewHealthUsecase(log *logrus.Logger, checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{
		log:    log,
		checks: checks,
	}
}

func (u *healthUsecase) Check(ctx context.Context) (*dto.HealthResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var mu sync.Mutex
	services := make(map[string]string, len(names))
	healthy := true

	// Checks report their own failure; none aborts the others
	var g errgroup.Group
	for _, name := range names {
		check := u.checks[name]
		g.Go(func() error {
			status := "up"
			if err := check(ctx); err != nil {
				u.log.Warnf("Health check %s failed: %+v", name, err)
				status = "down"
			}
			mu.Lock()
			services[name] = status
			if status != "up" {
				healthy = false
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	overall := "ok"
	if !healthy {
		overall = "degraded"
	}
	return &dto.HealthResponse{Status: overall, Services: services}, healthy
}
