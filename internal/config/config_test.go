package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WhackALawyer_Go/internal/taunt"
)

var envVars = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "ADMIN_API_KEY",
	"TAUNT_API_KEY", "TAUNT_BASE_URL", "TAUNT_MODEL", "TAUNT_TIMEOUT", "TAUNT_CACHE_TTL", "TAUNT_FILE",
	"ROUND_DURATION", "SESSION_TTL", "MAX_SESSIONS", "ARCHIVE_BACKEND",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
	"WORKER_COUNT", "WORKER_QUEUE_SIZE", "TRUSTED_PROXIES",
}

// clearEnvVars blanks every variable Load reads; empty values fall back to defaults
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, taunt.DefaultBaseURL, cfg.TauntBaseURL)
		assert.Equal(t, taunt.DefaultModel, cfg.TauntModel)
		assert.Equal(t, 10*time.Second, cfg.TauntTimeout)
		assert.Equal(t, 10*time.Minute, cfg.TauntCacheTTL)
		assert.Equal(t, 45, cfg.RoundDuration)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Equal(t, 1000, cfg.MaxSessions)
		assert.Equal(t, ArchiveBackendMemory, cfg.ArchiveBackend)
		assert.False(t, cfg.UsesPostgres())
		assert.Equal(t, 2, cfg.WorkerCount)
		assert.Equal(t, 100, cfg.WorkerQueueSize)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("ADMIN_API_KEY", "admin-key")
		t.Setenv("TAUNT_API_KEY", "sk-test")
		t.Setenv("TAUNT_TIMEOUT", "3s")
		t.Setenv("ROUND_DURATION", "30")
		t.Setenv("SESSION_TTL", "5m")
		t.Setenv("ARCHIVE_BACKEND", "postgres")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PASSWORD", "s3cret")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, ,10.0.0.2")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "admin-key", cfg.AdminAPIKey)
		assert.Equal(t, 3*time.Second, cfg.TauntTimeout)
		assert.Equal(t, 30, cfg.RoundDuration)
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.True(t, cfg.UsesPostgres())
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Empty(t, cfg.Warnings())
	})

	errorCases := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"invalid PORT", "PORT", "not-a-number", "invalid PORT value"},
		{"invalid ROUND_DURATION", "ROUND_DURATION", "forever", "invalid ROUND_DURATION value"},
		{"invalid SESSION_TTL", "SESSION_TTL", "soon", "invalid SESSION_TTL value"},
		{"negative TAUNT_TIMEOUT", "TAUNT_TIMEOUT", "-1s", "invalid TAUNT_TIMEOUT value"},
		{"port out of range", "PORT", "70000", "Port"},
		{"unknown backend", "ARCHIVE_BACKEND", "mongo", "ArchiveBackend"},
		{"unknown log format", "LOG_FORMAT", "xml", "LogFormat"},
		{"zero round duration", "ROUND_DURATION", "0", "RoundDuration"},
		{"bad taunt url", "TAUNT_BASE_URL", "not a url", "TauntBaseURL"},
	}
	for _, tc := range errorCases {
		t.Run("returns error for "+tc.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv(tc.key, tc.value)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "")
	v, err := getEnvAsInt("TEST_INT_VAR", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	t.Setenv("TEST_INT_VAR", "-10")
	v, err = getEnvAsInt("TEST_INT_VAR", 42)
	require.NoError(t, err)
	assert.Equal(t, -10, v)

	t.Setenv("TEST_INT_VAR", "42.5")
	_, err = getEnvAsInt("TEST_INT_VAR", 42)
	assert.ErrorContains(t, err, "TEST_INT_VAR")
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_VAR", "")
	v, err := getEnvAsDuration("TEST_DURATION_VAR", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, v)

	t.Setenv("TEST_DURATION_VAR", "1h30m")
	v, err = getEnvAsDuration("TEST_DURATION_VAR", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, v)

	t.Setenv("TEST_DURATION_VAR", "90")
	_, err = getEnvAsDuration("TEST_DURATION_VAR", time.Minute)
	assert.ErrorContains(t, err, "TEST_DURATION_VAR")
}

func TestTauntConfig(t *testing.T) {
	cfg := &Config{
		TauntAPIKey:   "k",
		TauntBaseURL:  "http://localhost:9999/v1",
		TauntModel:    "m",
		TauntTimeout:  time.Second,
		TauntCacheTTL: time.Minute,
		TauntFile:     "taunts.json",
	}

	assert.Equal(t, taunt.Config{
		APIKey:   "k",
		BaseURL:  "http://localhost:9999/v1",
		Model:    "m",
		Timeout:  time.Second,
		CacheTTL: time.Minute,
		File:     "taunts.json",
	}, cfg.TauntConfig())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList(" a "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b,"))
}
