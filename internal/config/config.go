package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DSN     string
	AppPort string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	VerifyTTL  time.Duration

	JiraHost    string
	JiraUser    string
	JiraAPIKey  string
	JiraProject string

	RendererURL string
}

func Load() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := Config{
		DSN:     os.Getenv("MYSQL_DSN"),
		AppPort: os.Getenv("APP_PORT"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AccessTTL:  envDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL: envDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		ResetTTL:   envDuration("RESET_TOKEN_TTL", 24*time.Hour),
		VerifyTTL:  envDuration("VERIFY_TOKEN_TTL", 24*time.Hour),

		JiraHost:    os.Getenv("JIRA_HOST"),
		JiraUser:    os.Getenv("JIRA_USERNAME"),
		JiraAPIKey:  os.Getenv("JIRA_API_KEY"),
		JiraProject: os.Getenv("JIRA_PROJECT"),

		RendererURL: os.Getenv("RENDERER_URL"),
	}

	if cfg.DSN == "" {
		log.Fatal("❌ MYSQL_DSN not set in environment")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-only"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "5000"
	}

	return cfg
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %s", key, raw, def)
		return def
	}
	return d
}
