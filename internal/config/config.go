package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	AppEnv            string
	GeminiAPIKey      string
	GeminiImageAPIKey string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	OpenAIAPIKey      string
	ProviderTimeout   time.Duration
}

// DefaultVoiceID is the built-in ElevenLabs voice ("Rachel") used when no
// ELEVENLABS_VOICE_ID is configured.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// LoadConfig reads the environment. No provider key is required at boot:
// a missing key only degrades the capability it belongs to.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DB_URL", ""),
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiImageAPIKey: getEnv("GEMINI_IMAGE_API_KEY", ""),
		ElevenLabsAPIKey:  getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: getEnv("ELEVENLABS_VOICE_ID", DefaultVoiceID),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		ProviderTimeout:   time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 90)) * time.Second,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
