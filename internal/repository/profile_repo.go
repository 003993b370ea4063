package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/RB-QX-byte/Fitness/internal/models"
)

// ProfileRepository is the Postgres-backed ProfileStore. The profile is a
// single jsonb document keyed by session id.
type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Save(ctx context.Context, sessionID string, profile *models.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query := `
		INSERT INTO user_profiles (session_id, profile, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET profile = EXCLUDED.profile, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, sessionID, payload); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Load(ctx context.Context, sessionID string) (*models.UserProfile, bool, error) {
	query := `SELECT profile FROM user_profiles WHERE session_id = $1`

	var payload []byte
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, true, nil
}

func (r *ProfileRepository) Clear(ctx context.Context, sessionID string) error {
	query := `DELETE FROM user_profiles WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
