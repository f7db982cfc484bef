package bootstrap

import (
	"log/slog"

	"github.com/osse101/WhackALawyer_Go/internal/config"
	"github.com/osse101/WhackALawyer_Go/internal/handler"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
)

// SetupLogger installs the process logger from the loaded configuration and
// reports configuration warnings through it.
func SetupLogger(cfg *config.Config) {
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, handler.GetVersion(), cfg.Environment))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStartingWhackALawyer, "version", handler.GetVersion(), "environment", cfg.Environment)

	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	slog.Info(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"archive_backend", cfg.ArchiveBackend,
		"round_duration", cfg.RoundDuration,
		"max_sessions", cfg.MaxSessions,
		"session_ttl", cfg.SessionTTL)
}
