package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"trip-scheduler-service/internal/domain"
)

// In-memory PlanRepository for single-node deployments without Postgres.
// Plans are evicted after the retention window.
type MemoryPlanRepository struct {
	store *gocache.Cache
}

func NewMemoryPlanRepository(retention time.Duration) *MemoryPlanRepository {
	return &MemoryPlanRepository{store: gocache.New(retention, 10*time.Minute)}
}

func (r *MemoryPlanRepository) SavePlan(_ context.Context, plan *domain.TripPlan) error {
	if plan == nil {
		return errors.New("save plan: plan is nil")
	}
	r.store.Set(plan.ID.String(), plan, gocache.DefaultExpiration)
	return nil
}

func (r *MemoryPlanRepository) GetPlan(_ context.Context, id uuid.UUID) (*domain.TripPlan, error) {
	v, ok := r.store.Get(id.String())
	if !ok {
		return nil, ErrPlanNotFound
	}
	plan, ok := v.(*domain.TripPlan)
	if !ok {
		return nil, errors.New("get plan: unexpected cache entry type")
	}
	return plan, nil
}
