package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RB-QX-byte/Fitness/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProfileStore holds one profile per session id, overwritten wholesale on
// each save. Load reports absence via its bool, never via an error.
type ProfileStore interface {
	Save(ctx context.Context, sessionID string, profile *models.UserProfile) error
	Load(ctx context.Context, sessionID string) (*models.UserProfile, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

// PlanStore holds one plan envelope per session id. Save stamps the
// envelope's SavedAt.
type PlanStore interface {
	Save(ctx context.Context, sessionID string, plan *models.FitnessPlan) (*models.StoredPlan, error)
	Load(ctx context.Context, sessionID string) (*models.StoredPlan, bool, error)
	Clear(ctx context.Context, sessionID string) error
}
