package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/osse101/WhackALawyer_Go/internal/archive"
	"github.com/osse101/WhackALawyer_Go/internal/bootstrap"
	"github.com/osse101/WhackALawyer_Go/internal/config"
	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/game"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/scheduler"
	"github.com/osse101/WhackALawyer_Go/internal/server"
	"github.com/osse101/WhackALawyer_Go/internal/session"
	"github.com/osse101/WhackALawyer_Go/internal/sse"
	"github.com/osse101/WhackALawyer_Go/internal/taunt"
	"github.com/osse101/WhackALawyer_Go/internal/worker"
)

// @title WhackALawyer API
// @version 1.0
// @description Whack-a-lawyer game sessions, live event streams and the round leaderboard.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// run serves until a signal arrives or the listener fails, then shuts
// every component down.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.InitializeArchive(ctx, cfg)
	if err != nil {
		return err
	}
	archiveSvc := archive.NewService(store.Repository)

	hub := sse.NewHub()
	hub.Start()

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	tickers := scheduler.New()
	tickers.Enqueue(archive.RefreshTaskName, archive.RefreshInterval, pool, archiveSvc.RefreshJob())
	taunts := taunt.New(cfg.TauntConfig())

	roundCfg := game.DefaultConfig()
	roundCfg.RoundDuration = cfg.RoundDuration

	manager := session.NewManager(session.ManagerConfig{
		MaxSessions: cfg.MaxSessions,
		TTL:         cfg.SessionTTL,
		Round:       roundCfg,
	}, taunts, tickers, session.Fanout{hub, metrics.NewEventMetricsCollector()}, func(summary domain.RoundSummary) {
		if !pool.TryEnqueue(archiveSvc.RecordJob(summary)) {
			slog.Warn("Archive queue full, dropping round", "session_id", summary.SessionID, "score", summary.Score)
		}
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		AdminAPIKey:    cfg.AdminAPIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		DBPool:      store.ReadinessPool(),
		Sessions:    manager,
		Hub:         hub,
		Leaderboard: archiveSvc,
		Taunts:      taunts,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownPeriod)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:   srv,
		Sessions: manager,
		Tickers:  tickers,
		Workers:  pool,
		Hub:      hub,
		Archive:  store,
	})

	return runErr
}
