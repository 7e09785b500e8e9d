package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Debate     DebateConfig
	Moderation ModerationConfig
	Ai         AIConfig
	Store      StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	TracingEnabled     bool
	OTLPEndpoint       string
}

type DebateConfig struct {
	RoundLimit int
	JitterSeed int64 // 0 = seed from time
}

type ModerationConfig struct {
	StrikeThreshold    int
	StrikeStore        string // "memory" or "redis"
	RedisURL           string
	ClassifierEndpoint string // empty disables the external classifier
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string
	OllamaBaseURL string
	OpenAIBaseURL string
	APIKey        string
}

type StoreConfig struct {
	SQLitePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			TracingEnabled:     getEnvAsBool("TRACING_ENABLED", false),
			OTLPEndpoint:       getEnv("OTLP_ENDPOINT", "localhost:4318"),
		},
		Debate: DebateConfig{
			RoundLimit: getEnvAsInt("DEBATE_ROUND_LIMIT", 5),
			JitterSeed: int64(getEnvAsInt("DEBATE_JITTER_SEED", 0)),
		},
		Moderation: ModerationConfig{
			StrikeThreshold:    getEnvAsInt("MODERATION_STRIKE_THRESHOLD", 2),
			StrikeStore:        getEnv("MODERATION_STRIKE_STORE", "memory"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ClassifierEndpoint: getEnv("MODERATION_CLASSIFIER_URL", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			APIKey:        getEnv("LLM_API_KEY", ""),
		},
		Store: StoreConfig{
			SQLitePath: getEnv("SESSION_DB_PATH", "data/sessions.db"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
