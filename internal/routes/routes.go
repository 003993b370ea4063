package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RB-QX-byte/Fitness/internal/config"
	"github.com/RB-QX-byte/Fitness/internal/handlers"
	"github.com/RB-QX-byte/Fitness/internal/middleware"
	"github.com/RB-QX-byte/Fitness/internal/repository"
	"github.com/RB-QX-byte/Fitness/internal/services"
)

// RegisterRoutes wires stores, services and handlers. A nil db selects the
// in-memory stores: the service still runs, records just do not survive a
// restart.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	var profileStore repository.ProfileStore
	var planStore repository.PlanStore
	if db != nil {
		profileStore = repository.NewProfileRepository(db)
		planStore = repository.NewPlanRepository(db)
	} else {
		log.Println("No DB_URL configured; using in-memory stores")
		profileStore = repository.NewMemoryProfileStore()
		planStore = repository.NewMemoryPlanStore()
	}

	textGemini := services.NewGeminiService(cfg.GeminiAPIKey, cfg.ProviderTimeout)
	imageGemini := services.NewGeminiService(cfg.GeminiImageAPIKey, cfg.ProviderTimeout)

	planService := services.NewPlanService(textGemini)
	imageService := services.NewImageService(imageGemini)
	speechService := services.NewSpeechService(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID, cfg.OpenAIAPIKey, cfg.ProviderTimeout)
	dashboardService := services.NewDashboardService(profileStore, planStore, planService)
	onboardingService := services.NewOnboardingService(profileStore)

	generateHandler := handlers.NewGenerateHandler(planService)
	mediaHandler := handlers.NewMediaHandler(imageService, speechService)
	profileHandler := handlers.NewProfileHandler(profileStore, dashboardService)
	planHandler := handlers.NewPlanHandler(dashboardService, planStore)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)

	api := app.Group("/api", middleware.Session())

	// Provider gateways.
	api.Post("/generate", generateHandler.GeneratePlan)
	api.Post("/image", mediaHandler.GenerateImage)
	api.Post("/voice", mediaHandler.SynthesizeVoice)

	// Stores.
	api.Get("/profile", profileHandler.GetProfile)
	api.Put("/profile", profileHandler.SaveProfile)
	api.Delete("/profile", profileHandler.ClearProfile)
	api.Get("/profile/status", profileHandler.OnboardingStatus)
	api.Delete("/session", profileHandler.ClearSession)

	// Onboarding wizard.
	onboarding := api.Group("/onboarding")
	onboarding.Post("/start", onboardingHandler.Start)
	onboarding.Get("", onboardingHandler.Current)
	onboarding.Put("/fields", onboardingHandler.UpdateFields)
	onboarding.Post("/next", onboardingHandler.Next)
	onboarding.Post("/back", onboardingHandler.Back)
	onboarding.Delete("", onboardingHandler.Abandon)

	// Dashboard.
	api.Get("/dashboard", planHandler.GetDashboard)
	api.Get("/plan", planHandler.GetPlan)
	api.Delete("/plan", planHandler.ClearPlan)
	api.Post("/plan/generate", planHandler.GeneratePlan)
	api.Get("/plan/voice-script", planHandler.VoiceScript)
	api.Get("/plan/exercises", planHandler.FindExercise)
	api.Get("/plan/exercises/:id", planHandler.GetExercise)
	api.Get("/plan/meals", planHandler.FindMeal)
	api.Get("/plan/meals/:id", planHandler.GetMeal)
}
