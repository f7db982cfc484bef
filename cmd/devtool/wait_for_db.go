package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WhackALawyer_Go/internal/config"
	"github.com/osse101/WhackALawyer_Go/internal/database"
)

const (
	waitForDBRetries  = 30
	waitForDBInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	for i := 0; i < waitForDBRetries; i++ {
		pool, err := connect(context.Background(), cfg)
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}

		PrintInfo("Database not ready (%d/%d): %v", i+1, waitForDBRetries, err)
		time.Sleep(waitForDBInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", waitForDBRetries)
}

// connect opens a small pool against the configured database
func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	connString := database.ConnString(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	return database.NewPool(ctx, connString, 2, time.Minute, time.Minute)
}
