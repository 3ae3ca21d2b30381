package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the process needs; it is built once in main and
// injected, never read from ambient globals afterwards.
type Config struct {
	Port         string
	DatabasePath string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// Brevo transactional email credentials. Optional in development:
	// without them sends fail and are logged, registration still succeeds.
	BrevoAPIKey      string
	BrevoSenderEmail string

	CORSOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "7070"),
		DatabasePath:     getEnv("DATABASE_PATH", "journal.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		BrevoSenderEmail: os.Getenv("BREVO_SENDER_EMAIL"),
		CORSOrigins:      splitOrigins(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required environment variable: JWT_SECRET")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
