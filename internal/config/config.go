package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Clip     ClipConfig
	Ai       AIConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	ConversationStore  string // "memory" or "redis"
	CatalogSyncTopic   string
}

type DatabaseConfig struct {
	Connection string
}

type ClipConfig struct {
	BaseURL             string
	MatchTimeoutSeconds int
	PushTimeoutSeconds  int
}

type AIConfig struct {
	LLMProvider         string // "openrouter" or "ollama"
	LLMModel            string // e.g. "openai/gpt-4o-mini"
	OllamaBaseURL       string
	ReplyTimeoutSeconds int
}

type APIKeys struct {
	OpenRouter string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ConversationStore:  getEnv("CONVERSATION_STORE", "memory"),
			CatalogSyncTopic:   getEnv("CATALOG_SYNC_TOPIC_NAME", "CATALOG_SYNC"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Clip: ClipConfig{
			BaseURL:             getEnv("CLIP_SERVICE_URL", "http://localhost:5001"),
			MatchTimeoutSeconds: getEnvAsInt("CLIP_MATCH_TIMEOUT_SECONDS", 60),
			PushTimeoutSeconds:  getEnvAsInt("CLIP_PUSH_TIMEOUT_SECONDS", 120),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:            getEnv("LLM_MODEL", "openai/gpt-4o-mini"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ReplyTimeoutSeconds: getEnvAsInt("REPLY_TIMEOUT_SECONDS", 30),
		},
		Keys: APIKeys{
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
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
