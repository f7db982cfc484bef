package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/WhackALawyer_Go/internal/taunt"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string `validate:"oneof=dev staging prod test"`
	AdminAPIKey string // admin routes are disabled when empty
	// TrustedProxies may set X-Forwarded-For for rate limiting
	TrustedProxies []string

	TauntAPIKey   string
	TauntBaseURL  string `validate:"required,url"`
	TauntModel    string `validate:"required"`
	TauntTimeout  time.Duration
	TauntCacheTTL time.Duration
	TauntFile     string

	RoundDuration int `validate:"min=1"`
	SessionTTL    time.Duration
	MaxSessions   int `validate:"min=1"`

	ArchiveBackend string `validate:"oneof=memory postgres"`
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string

	WorkerCount     int `validate:"min=1"`
	WorkerQueueSize int `validate:"min=1"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		AdminAPIKey:    getEnv("ADMIN_API_KEY", ""),
		TauntAPIKey:    getEnv("TAUNT_API_KEY", ""),
		TauntBaseURL:   getEnv("TAUNT_BASE_URL", taunt.DefaultBaseURL),
		TauntModel:     getEnv("TAUNT_MODEL", taunt.DefaultModel),
		TauntFile:      getEnv("TAUNT_FILE", ""),
		ArchiveBackend: getEnv("ARCHIVE_BACKEND", ArchiveBackendMemory),
		DBUser:         getEnv("DB_USER", DefaultDBUser),
		DBPassword:     getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:         getEnv("DB_HOST", DefaultDBHost),
		DBPort:         getEnv("DB_PORT", DefaultDBPort),
		DBName:         getEnv("DB_NAME", DefaultDBName),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
	}

	var err error
	ints := []struct {
		key    string
		def    int
		target *int
	}{
		{"PORT", DefaultPort, &cfg.Port},
		{"ROUND_DURATION", DefaultRoundDuration, &cfg.RoundDuration},
		{"MAX_SESSIONS", DefaultMaxSessions, &cfg.MaxSessions},
		{"WORKER_COUNT", DefaultWorkerCount, &cfg.WorkerCount},
		{"WORKER_QUEUE_SIZE", DefaultWorkerQueue, &cfg.WorkerQueueSize},
	}
	for _, v := range ints {
		if *v.target, err = getEnvAsInt(v.key, v.def); err != nil {
			return nil, err
		}
	}

	durations := []struct {
		key    string
		def    time.Duration
		target *time.Duration
	}{
		{"TAUNT_TIMEOUT", DefaultTauntTimeout, &cfg.TauntTimeout},
		{"TAUNT_CACHE_TTL", DefaultTauntCacheTTL, &cfg.TauntCacheTTL},
		{"SESSION_TTL", DefaultSessionTTL, &cfg.SessionTTL},
	}
	for _, v := range durations {
		if *v.target, err = getEnvAsDuration(v.key, v.def); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated value, dropping blank entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt parses an integer variable, returning the default when unset
func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// getEnvAsDuration parses a duration variable such as "30s" or "10m"
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s value: must be positive", key)
	}
	return v, nil
}

// TauntConfig returns the taunt provider settings
func (c *Config) TauntConfig() taunt.Config {
	return taunt.Config{
		APIKey:   c.TauntAPIKey,
		BaseURL:  c.TauntBaseURL,
		Model:    c.TauntModel,
		Timeout:  c.TauntTimeout,
		CacheTTL: c.TauntCacheTTL,
		File:     c.TauntFile,
	}
}

// UsesPostgres reports whether rounds are archived in Postgres
func (c *Config) UsesPostgres() bool {
	return c.ArchiveBackend == ArchiveBackendPostgres
}
