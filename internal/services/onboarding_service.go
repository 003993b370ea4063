package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/repository"
)

// Step describes one screen of the onboarding wizard.
type Step struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

// Steps is the fixed, ordered wizard. The last step is optional and always
// valid.
var Steps = []Step{
	{Title: "Personal Info", Description: "Let's get to know you better", Fields: []string{"name", "age", "gender"}},
	{Title: "Body Metrics", Description: "Help us understand your physique", Fields: []string{"height_cm", "weight_kg"}},
	{Title: "Fitness Goal", Description: "What do you want to achieve?", Fields: []string{"fitness_goal"}},
	{Title: "Workout Setup", Description: "Customize your training", Fields: []string{"fitness_level", "workout_location"}},
	{Title: "Diet Preferences", Description: "Your nutritional needs", Fields: []string{"dietary_preference"}},
	{Title: "Health Info", Description: "Optional but helpful", Fields: []string{"medical_history", "stress_level", "sleep_hours"}},
}

// FlowState is the wizard snapshot returned to the client after every
// operation.
type FlowState struct {
	StepIndex   int                 `json:"step_index"`
	TotalSteps  int                 `json:"total_steps"`
	Step        Step                `json:"step"`
	Progress    int                 `json:"progress"`
	Draft       *models.UserProfile `json:"draft"`
	CanGoBack   bool                `json:"can_go_back"`
	StepValid   bool                `json:"step_valid"`
	Completed   bool                `json:"completed"`
}

type flow struct {
	stepIndex int
	draft     models.UserProfile
}

// OnboardingService holds one in-memory wizard per session. Nothing is
// persisted until the final step is passed: an abandoned flow leaves no
// profile behind.
type OnboardingService struct {
	mu       sync.Mutex
	flows    map[string]*flow
	profiles repository.ProfileStore
}

func NewOnboardingService(profiles repository.ProfileStore) *OnboardingService {
	return &OnboardingService{
		flows:    make(map[string]*flow),
		profiles: profiles,
	}
}

// Start begins (or restarts) the wizard for a session.
func (s *OnboardingService) Start(sessionID string) *FlowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &flow{}
	s.flows[sessionID] = f
	return s.stateLocked(f, false)
}

// Current returns the in-progress wizard, or ErrNoFlow.
func (s *OnboardingService) Current(sessionID string) (*FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrNoFlow
	}
	return s.stateLocked(f, false), nil
}

// UpdateFields merges the set fields of partial into the draft.
func (s *OnboardingService) UpdateFields(sessionID string, partial *models.UserProfile) (*FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrNoFlow
	}
	f.draft.Merge(partial)
	return s.stateLocked(f, false), nil
}

// Next advances past the current step once its validation predicate holds.
// Advancing past the final step persists the accumulated profile and ends
// the flow.
func (s *OnboardingService) Next(ctx context.Context, sessionID string) (*FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrNoFlow
	}

	if !stepValid(f.stepIndex, &f.draft) {
		return nil, ErrStepIncomplete
	}

	if f.stepIndex < len(Steps)-1 {
		f.stepIndex++
		return s.stateLocked(f, false), nil
	}

	if !f.draft.Complete() {
		return nil, ErrStepIncomplete
	}
	if err := s.profiles.Save(ctx, sessionID, &f.draft); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	state := s.stateLocked(f, true)
	delete(s.flows, sessionID)
	return state, nil
}

// Back steps to the previous screen. Rejected on the first step.
func (s *OnboardingService) Back(sessionID string) (*FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrNoFlow
	}
	if f.stepIndex == 0 {
		return nil, ErrAtFirstStep
	}
	f.stepIndex--
	return s.stateLocked(f, false), nil
}

// Abandon drops the flow without persisting anything.
func (s *OnboardingService) Abandon(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, sessionID)
}

func (s *OnboardingService) stateLocked(f *flow, completed bool) *FlowState {
	draft := f.draft
	return &FlowState{
		StepIndex:  f.stepIndex,
		TotalSteps: len(Steps),
		Step:       Steps[f.stepIndex],
		Progress:   (f.stepIndex + 1) * 100 / len(Steps),
		Draft:      &draft,
		CanGoBack:  f.stepIndex > 0,
		StepValid:  stepValid(f.stepIndex, &f.draft),
		Completed:  completed,
	}
}

// stepValid is the per-step validation predicate. Zero values never count:
// an age of 0 does not satisfy Personal Info.
func stepValid(stepIndex int, draft *models.UserProfile) bool {
	switch stepIndex {
	case 0:
		return textSet(draft.Name) && draft.Age != nil && *draft.Age > 0 && textSet(draft.Gender)
	case 1:
		return draft.HeightCM != nil && *draft.HeightCM > 0 && draft.WeightKG != nil && *draft.WeightKG > 0
	case 2:
		return textSet(draft.FitnessGoal)
	case 3:
		return textSet(draft.FitnessLevel) && textSet(draft.WorkoutLocation)
	case 4:
		return textSet(draft.DietaryPreference)
	case 5:
		return true
	default:
		return false
	}
}

func textSet(s *string) bool {
	return s != nil && *s != ""
}
