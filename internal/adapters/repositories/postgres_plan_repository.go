package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"trip-scheduler-service/internal/domain"
)

var ErrPlanNotFound = errors.New("plan not found")

// Postgres-backed implementation of the PlanRepository port. Plans are
// stored as a JSONB payload keyed by id so the schema survives itinerary
// shape changes.
type PostgresPlanRepository struct{ DB *sql.DB }

func NewPostgresPlanRepository(db *sql.DB) *PostgresPlanRepository {
	return &PostgresPlanRepository{DB: db}
}

// Create the plans table if it does not exist.
func (r *PostgresPlanRepository) InitSchema(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("postgres plan repository: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id UUID PRIMARY KEY,
		city TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	);
	`
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init plan schema: %w", err)
	}
	return nil
}

func (r *PostgresPlanRepository) SavePlan(ctx context.Context, plan *domain.TripPlan) error {
	if r.DB == nil {
		return errors.New("postgres plan repository: DB is nil")
	}
	if plan == nil {
		return errors.New("save plan: plan is nil")
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save plan: marshal payload: %w", err)
	}

	query := `
	INSERT INTO plans (plan_id, city, created_at, payload)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (plan_id) DO UPDATE SET payload = EXCLUDED.payload;
	`
	if _, err := r.DB.ExecContext(ctx, query, plan.ID, plan.City, plan.CreatedAt, payload); err != nil {
		return fmt.Errorf("save plan: insert plan_id=%s: %w", plan.ID, err)
	}
	return nil
}

func (r *PostgresPlanRepository) GetPlan(ctx context.Context, id uuid.UUID) (*domain.TripPlan, error) {
	if r.DB == nil {
		return nil, errors.New("postgres plan repository: DB is nil")
	}

	query := `SELECT payload FROM plans WHERE plan_id = $1;`

	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: query plan_id=%s: %w", id, err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, fmt.Errorf("get plan: unmarshal payload: %w", err)
	}
	return &plan, nil
}
