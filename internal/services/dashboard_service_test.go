package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/RB-QX-byte/Fitness/internal/models"
	"github.com/RB-QX-byte/Fitness/internal/prompts"
	"github.com/RB-QX-byte/Fitness/internal/repository"
)

type stubPlanGenerator struct {
	mu          sync.Mutex
	plan        *models.FitnessPlan
	err         error
	started     chan struct{}
	proceed     chan struct{}
	lastProfile *models.UserProfile
}

func (g *stubPlanGenerator) GeneratePlan(_ context.Context, profile *models.UserProfile) (*models.FitnessPlan, error) {
	g.mu.Lock()
	g.lastProfile = profile
	plan, err := g.plan, g.err
	g.mu.Unlock()
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.proceed != nil {
		<-g.proceed
	}
	return plan, err
}

func decodedSamplePlan(t *testing.T) *models.FitnessPlan {
	t.Helper()
	plan, err := DecodePlan([]byte(samplePlanJSON))
	if err != nil {
		t.Fatalf("decode sample plan: %v", err)
	}
	return plan
}

func newTestDashboard(generator PlanGenerator) (*DashboardService, *repository.MemoryProfileStore, *repository.MemoryPlanStore) {
	profiles := repository.NewMemoryProfileStore()
	plans := repository.NewMemoryPlanStore()
	return NewDashboardService(profiles, plans, generator), profiles, plans
}

func TestGeneratePersistsPlanForSession(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	service, profiles, plans := newTestDashboard(generator)
	ctx := context.Background()

	profiles.Save(ctx, "s1", completeProfile())

	stored, err := service.Generate(ctx, "s1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if stored.SavedAt.IsZero() {
		t.Fatal("expected SavedAt stamp")
	}
	if generator.lastProfile == nil || *generator.lastProfile.Name != "Sam" {
		t.Fatal("stored profile was not passed to the generator")
	}

	loaded, ok, _ := plans.Load(ctx, "s1")
	if !ok {
		t.Fatal("plan was not persisted")
	}
	if loaded.Plan.WorkoutPlan.Title != "Full Body Burner" {
		t.Fatalf("unexpected persisted plan %q", loaded.Plan.WorkoutPlan.Title)
	}
}

func TestGenerateFailureLeavesStoredPlanUntouched(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	service, _, plans := newTestDashboard(generator)
	ctx := context.Background()

	if _, err := service.Generate(ctx, "s1"); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	generator.plan = nil
	generator.err = ErrQuotaExhausted
	if _, err := service.Generate(ctx, "s1"); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}

	loaded, ok, _ := plans.Load(ctx, "s1")
	if !ok {
		t.Fatal("previous plan disappeared")
	}
	if loaded.Plan.WorkoutPlan.Title != "Full Body Burner" {
		t.Fatalf("previous plan was overwritten: %q", loaded.Plan.WorkoutPlan.Title)
	}
}

func TestGenerateRejectsConcurrentRequests(t *testing.T) {
	generator := &stubPlanGenerator{
		plan:    decodedSamplePlan(t),
		started: make(chan struct{}, 1),
		proceed: make(chan struct{}),
	}
	service, _, _ := newTestDashboard(generator)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Generate(ctx, "s1")
		firstDone <- err
	}()

	<-generator.started

	if _, err := service.Generate(ctx, "s1"); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	close(generator.proceed)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Generate: %v", err)
	}
}

func TestGenerateConcurrencyGuardIsPerSession(t *testing.T) {
	generator := &stubPlanGenerator{
		plan:    decodedSamplePlan(t),
		started: make(chan struct{}, 1),
		proceed: make(chan struct{}),
	}
	service, _, _ := newTestDashboard(generator)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Generate(ctx, "s1")
		firstDone <- err
	}()
	<-generator.started

	// Another session is not blocked by s1's in-flight generation; it
	// parks on the shared stub until released.
	secondDone := make(chan error, 1)
	go func() {
		_, err := service.Generate(ctx, "s2")
		secondDone <- err
	}()
	<-generator.started

	close(generator.proceed)
	if err := <-firstDone; err != nil {
		t.Fatalf("session s1 Generate: %v", err)
	}
	if err := <-secondDone; err != nil {
		t.Fatalf("session s2 Generate: %v", err)
	}
}

func TestClearSessionDiscardsLateGenerationResult(t *testing.T) {
	generator := &stubPlanGenerator{
		plan:    decodedSamplePlan(t),
		started: make(chan struct{}, 1),
		proceed: make(chan struct{}),
	}
	service, _, plans := newTestDashboard(generator)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := service.Generate(ctx, "s1")
		done <- err
	}()
	<-generator.started

	// The session is wiped while generation is still in flight; the
	// late result's token is no longer current.
	if err := service.ClearSession(ctx, "s1"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	close(generator.proceed)

	if err := <-done; !errors.Is(err, ErrStaleGeneration) {
		t.Fatalf("expected ErrStaleGeneration, got %v", err)
	}
	if _, ok, _ := plans.Load(ctx, "s1"); ok {
		t.Fatal("stale generation result was persisted")
	}
}

// holdingPlanStore parks every Save until released, exposing the window
// between the token check and the write.
type holdingPlanStore struct {
	*repository.MemoryPlanStore
	saving  chan struct{}
	release chan struct{}
}

func (s *holdingPlanStore) Save(ctx context.Context, sessionID string, plan *models.FitnessPlan) (*models.StoredPlan, error) {
	s.saving <- struct{}{}
	<-s.release
	return s.MemoryPlanStore.Save(ctx, sessionID, plan)
}

func TestClearSessionDuringPersistDiscardsResult(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	profiles := repository.NewMemoryProfileStore()
	plans := &holdingPlanStore{
		MemoryPlanStore: repository.NewMemoryPlanStore(),
		saving:          make(chan struct{}, 1),
		release:         make(chan struct{}),
	}
	service := NewDashboardService(profiles, plans, generator)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := service.Generate(ctx, "s1")
		done <- err
	}()
	<-plans.saving

	// The wipe lands while the save is still writing; the result must not
	// outlive it.
	if err := service.ClearSession(ctx, "s1"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	close(plans.release)

	if err := <-done; !errors.Is(err, ErrStaleGeneration) {
		t.Fatalf("expected ErrStaleGeneration, got %v", err)
	}
	if _, ok, _ := plans.Load(ctx, "s1"); ok {
		t.Fatal("cleared session holds a plan from a superseded generation")
	}
}

func TestClearSessionWipesBothRecords(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	service, profiles, plans := newTestDashboard(generator)
	ctx := context.Background()

	profiles.Save(ctx, "s1", completeProfile())
	if _, err := service.Generate(ctx, "s1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := service.ClearSession(ctx, "s1"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	if _, ok, _ := profiles.Load(ctx, "s1"); ok {
		t.Fatal("profile survived ClearSession")
	}
	if _, ok, _ := plans.Load(ctx, "s1"); ok {
		t.Fatal("plan survived ClearSession")
	}
}

func TestLoadReportsEmptyState(t *testing.T) {
	generator := &stubPlanGenerator{}
	service, _, _ := newTestDashboard(generator)

	state := service.Load(context.Background(), "s1")

	if state.Onboarded {
		t.Fatal("unexpected onboarded state")
	}
	if state.Profile != nil || state.Plan != nil {
		t.Fatalf("expected empty state, got %+v", state)
	}
}

func TestHasCompletedOnboardingTracksProfileStore(t *testing.T) {
	generator := &stubPlanGenerator{}
	service, profiles, _ := newTestDashboard(generator)
	ctx := context.Background()

	if service.HasCompletedOnboarding(ctx, "s1") {
		t.Fatal("no profile saved yet")
	}

	profiles.Save(ctx, "s1", completeProfile())
	if !service.HasCompletedOnboarding(ctx, "s1") {
		t.Fatal("expected onboarding complete after save")
	}

	profiles.Clear(ctx, "s1")
	if service.HasCompletedOnboarding(ctx, "s1") {
		t.Fatal("expected onboarding incomplete after clear")
	}
}

func TestExerciseLookupByStableID(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	service, _, _ := newTestDashboard(generator)
	ctx := context.Background()

	stored, err := service.Generate(ctx, "s1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := stored.Plan.WorkoutPlan.Exercises[1]
	got, err := service.Exercise(ctx, "s1", want.ID, "")
	if err != nil {
		t.Fatalf("Exercise: %v", err)
	}
	if got.Name != want.Name {
		t.Fatalf("expected %q, got %q", want.Name, got.Name)
	}

	if _, err := service.Exercise(ctx, "s1", "nonexistent", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMealLookupByNameFallback(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	service, _, _ := newTestDashboard(generator)
	ctx := context.Background()

	if _, err := service.Generate(ctx, "s1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	meal, err := service.Meal(ctx, "s1", "", "Grilled Chicken Salad")
	if err != nil {
		t.Fatalf("Meal: %v", err)
	}
	if meal.Label != "Lunch" {
		t.Fatalf("unexpected meal %+v", meal)
	}
}

func TestLookupsWithoutPlanReturnNotFound(t *testing.T) {
	generator := &stubPlanGenerator{}
	service, _, _ := newTestDashboard(generator)
	ctx := context.Background()

	if _, err := service.Exercise(ctx, "s1", "any", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Meal(ctx, "s1", "", "any"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVoiceScriptUsesStoredPlan(t *testing.T) {
	generator := &stubPlanGenerator{plan: decodedSamplePlan(t)}
	service, _, _ := newTestDashboard(generator)
	ctx := context.Background()

	if script := service.VoiceScript(ctx, "s1", prompts.SectionWorkout); script != prompts.NoPlanScript {
		t.Fatalf("expected no-plan script before generation, got %q", script)
	}

	if _, err := service.Generate(ctx, "s1"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	script := service.VoiceScript(ctx, "s1", prompts.SectionWorkout)
	if script == prompts.NoPlanScript {
		t.Fatal("expected narration after generation")
	}
}
