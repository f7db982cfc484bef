package bootstrap

import (
	"context"
	"log/slog"
)

type stoppableServer interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server   stoppableServer
	Sessions interface{ Close() }
	Tickers  interface{ Stop() }
	Workers  interface{ Stop() }
	Hub      interface{ Stop() }
	Archive  *Archive
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Sessions (stop rounds and notify connected clients)
// 3. Tickers, then archive workers (flush finished rounds)
// 4. Event hub and database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Sessions != nil {
		slog.Info(LogMsgClosingSessions)
		components.Sessions.Close()
	}

	if components.Tickers != nil {
		components.Tickers.Stop()
	}

	if components.Workers != nil {
		slog.Info(LogMsgDrainingWorkers)
		components.Workers.Stop()
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.Archive != nil {
		components.Archive.Close()
	}

	slog.Info(LogMsgServerStopped)
}
