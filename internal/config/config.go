// Package config handles loading and validation of application configuration
// from environment variables. Supports .env files via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "dev-session-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        int
	Environment string // "development" | "staging" | "production"
	StaticDir   string

	// AI provider
	OpenAIKey     string
	OpenAIBaseURL string
	AITimeout     time.Duration

	// Sessions
	SessionSecret   string
	SessionTTL      time.Duration
	CookieSecure    bool
	PasswordHashing string // "plaintext" | "bcrypt"
	AllowedOrigins  []string

	// Redis (optional session backend)
	RedisURL string

	// Demo data
	SeedData          bool
	SimulatorSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvInt("PORT", 5000),
		Environment: getEnv("ENVIRONMENT", "development"),
		StaticDir:   getEnv("STATIC_DIR", ""),

		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		AITimeout:     time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		SessionSecret:   getEnv("SESSION_SECRET", devSessionSecret),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),
		PasswordHashing: strings.ToLower(getEnv("PASSWORD_HASHING", "plaintext")),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5000")),

		RedisURL: getEnv("REDIS_URL", ""),

		SeedData:          getEnvBool("SEED_DATA", true),
		SimulatorSchedule: getEnv("SIMULATOR_SCHEDULE", ""),
	}

	if cfg.PasswordHashing != "plaintext" && cfg.PasswordHashing != "bcrypt" {
		return nil, fmt.Errorf("PASSWORD_HASHING must be plaintext or bcrypt, got %q", cfg.PasswordHashing)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	// Validate required fields in production
	if cfg.IsProduction() && cfg.SessionSecret == devSessionSecret {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
