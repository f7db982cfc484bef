package config

import "time"

// Archive backends
const (
	ArchiveBackendMemory   = "memory"
	ArchiveBackendPostgres = "postgres"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultEnvironment    = "dev"
	DefaultRoundDuration  = 45
	DefaultSessionTTL     = 30 * time.Minute
	DefaultMaxSessions    = 1000
	DefaultTauntTimeout   = 10 * time.Second
	DefaultTauntCacheTTL  = 10 * time.Minute
	DefaultWorkerCount    = 2
	DefaultWorkerQueue    = 100
	DefaultDBUser         = "postgres"
	DefaultDBPassword     = "postgres"
	DefaultDBHost         = "localhost"
	DefaultDBPort         = "5432"
	DefaultDBName         = "whackalawyer"
	DefaultDBMaxConns     = 10
	DefaultDBMaxIdleTime  = 5 * time.Minute
	DefaultDBMaxLifetime  = time.Hour
	DefaultShutdownPeriod = 15 * time.Second
)

// Config warnings
const (
	WarnAdminDisabled   = "ADMIN_API_KEY is not set - admin routes are disabled"
	WarnDefaultPassword = "DB_PASSWORD is using the default value - please use a secure password"
	WarnStaticTaunts    = "TAUNT_API_KEY is not set - using the built-in taunt table"
)
