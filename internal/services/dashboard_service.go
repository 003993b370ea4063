package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/prompts"
	"github.com/RB-QX-byte/Fitness/internal/repository"
)

// PlanGenerator is the slice of the plan gateway the dashboard needs.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile *models.UserProfile) (*models.FitnessPlan, error)
}

// DashboardService reconciles persisted profile/plan state with
// user-triggered generation. Regeneration is serialized per session: a
// second request while one is in flight is rejected, and a result whose
// request token is no longer current is discarded instead of persisted.
type DashboardService struct {
	profiles  repository.ProfileStore
	plans     repository.PlanStore
	generator PlanGenerator

	mu sync.Mutex
	// inFlight maps session id -> current generation token. A wipe blanks
	// the token instead of deleting the entry, so the slot stays held (and
	// the result discardable) until the generation itself resolves.
	inFlight map[string]string
}

func NewDashboardService(profiles repository.ProfileStore, plans repository.PlanStore, generator PlanGenerator) *DashboardService {
	return &DashboardService{
		profiles:  profiles,
		plans:     plans,
		generator: generator,
		inFlight:  make(map[string]string),
	}
}

// DashboardState is what the dashboard renders on mount.
type DashboardState struct {
	Profile   *models.UserProfile `json:"profile"`
	Plan      *models.StoredPlan  `json:"plan"`
	Onboarded bool                `json:"onboarded"`
}

// Load returns the persisted state for a session. Store read failures are
// logged and reported as absence so the dashboard can always render.
func (s *DashboardService) Load(ctx context.Context, sessionID string) *DashboardState {
	profile, hasProfile, err := s.profiles.Load(ctx, sessionID)
	if err != nil {
		log.Printf("load profile: %v", err)
	}
	plan, _, err := s.plans.Load(ctx, sessionID)
	if err != nil {
		log.Printf("load plan: %v", err)
	}
	return &DashboardState{
		Profile:   profile,
		Plan:      plan,
		Onboarded: hasProfile,
	}
}

// HasCompletedOnboarding reports whether a profile is stored for the
// session.
func (s *DashboardService) HasCompletedOnboarding(ctx context.Context, sessionID string) bool {
	_, present, err := s.profiles.Load(ctx, sessionID)
	if err != nil {
		log.Printf("load profile: %v", err)
		return false
	}
	return present
}

// Generate runs one guarded generation for the session: acquire the
// in-flight slot, call the gateway, and persist only if this request's
// token is still current. A failed generation leaves any stored plan
// untouched.
func (s *DashboardService) Generate(ctx context.Context, sessionID string) (*models.StoredPlan, error) {
	s.mu.Lock()
	if _, busy := s.inFlight[sessionID]; busy {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	token := uuid.NewString()
	s.inFlight[sessionID] = token
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}()

	profile, _, err := s.profiles.Load(ctx, sessionID)
	if err != nil {
		log.Printf("load profile for generation: %v", err)
	}

	plan, genErr := s.generator.GeneratePlan(ctx, profile)

	if !s.tokenCurrent(sessionID, token) {
		return nil, ErrStaleGeneration
	}
	if genErr != nil {
		return nil, genErr
	}

	stored, err := s.plans.Save(ctx, sessionID, plan)
	if err != nil {
		return nil, err
	}

	// A wipe that raced the save has already cleared the stores; take the
	// record back out so the cleared session is not resurrected.
	if !s.tokenCurrent(sessionID, token) {
		if clearErr := s.plans.Clear(ctx, sessionID); clearErr != nil {
			log.Printf("clear superseded plan: %v", clearErr)
		}
		return nil, ErrStaleGeneration
	}
	return stored, nil
}

func (s *DashboardService) tokenCurrent(sessionID, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[sessionID] == token
}

// ClearSession wipes both records and invalidates any in-flight generation
// so a late-resolving result cannot resurrect cleared state. The in-flight
// slot stays held by the generation that owns it; only the token is voided.
func (s *DashboardService) ClearSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	if _, busy := s.inFlight[sessionID]; busy {
		s.inFlight[sessionID] = ""
	}
	s.mu.Unlock()

	if err := s.plans.Clear(ctx, sessionID); err != nil {
		return err
	}
	return s.profiles.Clear(ctx, sessionID)
}

// Exercise resolves a detail view by stable id, falling back to the first
// name match when name is given instead.
func (s *DashboardService) Exercise(ctx context.Context, sessionID, id, name string) (*models.Exercise, error) {
	stored, ok, err := s.plans.Load(ctx, sessionID)
	if err != nil || !ok {
		return nil, ErrNotFound
	}
	var exercise *models.Exercise
	if id != "" {
		exercise = stored.Plan.ExerciseByID(id)
	} else if name != "" {
		exercise = stored.Plan.ExerciseByName(name)
	}
	if exercise == nil {
		return nil, ErrNotFound
	}
	return exercise, nil
}

// Meal resolves a meal detail view by stable id or display name.
func (s *DashboardService) Meal(ctx context.Context, sessionID, id, name string) (*models.Meal, error) {
	stored, ok, err := s.plans.Load(ctx, sessionID)
	if err != nil || !ok {
		return nil, ErrNotFound
	}
	var meal *models.Meal
	if id != "" {
		meal = stored.Plan.MealByID(id)
	} else if name != "" {
		meal = stored.Plan.MealByName(name)
	}
	if meal == nil {
		return nil, ErrNotFound
	}
	return meal, nil
}

// VoiceScript derives the spoken narration for one plan section. No
// provider is contacted; synthesis happens at the voice gateway.
func (s *DashboardService) VoiceScript(ctx context.Context, sessionID, section string) string {
	stored, ok, err := s.plans.Load(ctx, sessionID)
	if err != nil || !ok {
		return prompts.NoPlanScript
	}
	return prompts.VoiceScript(section, &stored.Plan)
}
