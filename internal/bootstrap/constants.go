package bootstrap

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStartingWhackALawyer = "Starting WhackALawyer"
	LogMsgConfigurationLoaded  = "Configuration loaded"
)

// =============================================================================
// Archive Configuration
// =============================================================================

// Log messages for archive initialization
const (
	LogMsgMemoryArchive   = "Archiving rounds in memory"
	LogMsgPostgresArchive = "Archiving rounds in Postgres"

	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedMigrateDatabase = "failed to migrate database"
)

// MemoryArchiveCapacity bounds the in-memory round archive
const MemoryArchiveCapacity = 1000

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgClosingSessions      = "Closing sessions..."
	LogMsgDrainingWorkers      = "Draining archive workers..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
