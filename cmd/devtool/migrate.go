package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/osse101/HatcheryOps_Go/internal/config"
	"github.com/osse101/HatcheryOps_Go/internal/database"
	"github.com/osse101/HatcheryOps_Go/migrations"
)

const migrationsDir = "migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, create)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	// create only writes a file
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		goose.SetSequential(true)
		return goose.Create(nil, migrationsDir, args[1], "sql")
	}

	ctx := context.Background()
	pool, err := database.NewPool(dbURL(), 2, config.DefaultDBMaxConnIdle, config.DefaultDBMaxConnLife)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch subcmd {
	case "up":
		if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
			return err
		}
		PrintSuccess("Database is up to date")
	case "down":
		if err := database.MigrateDown(ctx, pool, migrations.FS); err != nil {
			return err
		}
		PrintSuccess("Rolled back one migration")
	case "status":
		states, err := database.MigrationStatus(ctx, pool, migrations.FS)
		if err != nil {
			return err
		}
		PrintHeader("Migration status")
		for _, s := range states {
			if s.Applied {
				PrintSuccess("%04d %s (applied %s)", s.Version, s.Path, s.AppliedAt.Format("2006-01-02 15:04"))
			} else {
				PrintWarning("%04d %s (pending)", s.Version, s.Path)
			}
		}
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
	return nil
}
