package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/RB-QX-byte/Fitness/internal/models"
)

// PlanRepository is the Postgres-backed PlanStore.
type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Save(ctx context.Context, sessionID string, plan *models.FitnessPlan) (*models.StoredPlan, error) {
	payload, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	query := `
		INSERT INTO fitness_plans (session_id, plan, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET plan = EXCLUDED.plan, saved_at = NOW()
		RETURNING saved_at
	`
	var savedAt time.Time
	if err := r.db.QueryRow(ctx, query, sessionID, payload).Scan(&savedAt); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	return &models.StoredPlan{Plan: *plan, SavedAt: savedAt}, nil
}

func (r *PlanRepository) Load(ctx context.Context, sessionID string) (*models.StoredPlan, bool, error) {
	query := `SELECT plan, saved_at FROM fitness_plans WHERE session_id = $1`

	var payload []byte
	var savedAt time.Time
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&payload, &savedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load plan: %w", err)
	}

	var plan models.FitnessPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &models.StoredPlan{Plan: plan, SavedAt: savedAt}, true, nil
}

func (r *PlanRepository) Clear(ctx context.Context, sessionID string) error {
	query := `DELETE FROM fitness_plans WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	return nil
}
