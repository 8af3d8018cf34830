package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "STATIC_DIR", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"AI_TIMEOUT_SECONDS", "SESSION_SECRET", "SESSION_TTL_HOURS", "COOKIE_SECURE",
		"PASSWORD_HASHING", "ALLOWED_ORIGINS", "REDIS_URL", "SEED_DATA", "SIMULATOR_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "plaintext", cfg.PasswordHashing)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.CookieSecure)
	assert.Empty(t, cfg.OpenAIKey)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5000"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("PASSWORD_HASHING", "BCRYPT")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", " https://ewers.example.org , ")
	t.Setenv("SIMULATOR_SCHEDULE", "@every 30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, "bcrypt", cfg.PasswordHashing)
	assert.False(t, cfg.SeedData)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://ewers.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, "@every 30s", cfg.SimulatorSchedule)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}},
		{"unknown hashing", map[string]string{"PASSWORD_HASHING": "md5"}},
		{"zero ttl", map[string]string{"SESSION_TTL_HOURS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadProductionWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "a-real-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
