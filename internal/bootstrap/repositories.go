package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WhackALawyer_Go/internal/archive"
	"github.com/osse101/WhackALawyer_Go/internal/config"
	"github.com/osse101/WhackALawyer_Go/internal/database"
	"github.com/osse101/WhackALawyer_Go/internal/database/postgres"
)

// Archive holds the round archive and, for the Postgres backend, its pool.
type Archive struct {
	Repository archive.Repository
	// Pool is nil for the memory backend
	Pool *pgxpool.Pool
}

// ReadinessPool returns the pool for readiness checks, or an untyped nil
// when no database is in use.
func (a *Archive) ReadinessPool() database.Pool {
	if a.Pool == nil {
		return nil
	}
	return a.Pool
}

// Close releases the database pool if there is one
func (a *Archive) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// InitializeArchive creates the configured round archive. The Postgres
// backend connects and applies migrations before returning.
func InitializeArchive(ctx context.Context, cfg *config.Config) (*Archive, error) {
	if !cfg.UsesPostgres() {
		slog.Info(LogMsgMemoryArchive, "capacity", MemoryArchiveCapacity)
		return &Archive{Repository: archive.NewMemoryRepository(MemoryArchiveCapacity)}, nil
	}

	connString := database.ConnString(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := database.NewPool(ctx, connString,
		config.DefaultDBMaxConns, config.DefaultDBMaxIdleTime, config.DefaultDBMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
	}

	slog.Info(LogMsgPostgresArchive, "host", cfg.DBHost, "database", cfg.DBName)
	return &Archive{Repository: postgres.NewRoundRepository(pool), Pool: pool}, nil
}
