package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/RB-QX-byte/Fitness/internal/models"
)

// In-memory stores back the service when no DB_URL is configured: the
// "no persistent medium" degradation. Records survive only for the
// lifetime of the process. Values are deep-copied on the way in and out
// so callers never alias stored state.

type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.UserProfile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*models.UserProfile)}
}

func (s *MemoryProfileStore) Save(_ context.Context, sessionID string, profile *models.UserProfile) error {
	clone, err := cloneJSON(profile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[sessionID] = clone
	return nil
}

func (s *MemoryProfileStore) Load(_ context.Context, sessionID string) (*models.UserProfile, bool, error) {
	s.mu.RLock()
	profile, ok := s.profiles[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	clone, err := cloneJSON(profile)
	if err != nil {
		return nil, false, err
	}
	return clone, true, nil
}

func (s *MemoryProfileStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, sessionID)
	return nil
}

type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*models.StoredPlan
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: make(map[string]*models.StoredPlan)}
}

func (s *MemoryPlanStore) Save(_ context.Context, sessionID string, plan *models.FitnessPlan) (*models.StoredPlan, error) {
	clone, err := cloneJSON(plan)
	if err != nil {
		return nil, err
	}
	stored := &models.StoredPlan{Plan: *clone, SavedAt: time.Now().UTC()}

	s.mu.Lock()
	s.plans[sessionID] = stored
	s.mu.Unlock()

	out := *stored
	return &out, nil
}

func (s *MemoryPlanStore) Load(_ context.Context, sessionID string) (*models.StoredPlan, bool, error) {
	s.mu.RLock()
	stored, ok := s.plans[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	clone, err := cloneJSON(&stored.Plan)
	if err != nil {
		return nil, false, err
	}
	return &models.StoredPlan{Plan: *clone, SavedAt: stored.SavedAt}, true, nil
}

func (s *MemoryPlanStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, sessionID)
	return nil
}

func cloneJSON[T any](value *T) (*T, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var clone T
	if err := json.Unmarshal(payload, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
