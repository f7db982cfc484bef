package main

import (
	"context"
	"fmt"

	"github.com/osse101/WhackALawyer_Go/internal/config"
	"github.com/osse101/WhackALawyer_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations...")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
		return nil
	case "status":
		PrintHeader("Migration status")
		states, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		for _, s := range states {
			if s.Applied {
				PrintSuccess("%05d %s", s.Version, s.Path)
			} else {
				PrintWarning("%05d %s (pending)", s.Version, s.Path)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown migrate subcommand %q", args[0])
	}
}
