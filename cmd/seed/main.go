package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/yukikurage/taskbot-api/internal/config"
	"github.com/yukikurage/taskbot-api/internal/database"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/seed"
)

func main() {
	reset := flag.Bool("reset", false, "delete the seeded users and their tasks before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if err := run(context.Background(), cfg, *reset); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, reset bool) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	if reset {
		if _, err := seed.Reset(ctx, db); err != nil {
			return fmt.Errorf("failed to reset seed data: %w", err)
		}
	}

	result, err := seed.Run(ctx, db, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	if result.Skipped {
		return nil
	}

	slog.Info("Seeded users", "password", seed.DefaultPassword, "users", []string{
		"admin@example.com", "john@example.com", "jane@example.com", "bob@example.com",
	})
	return nil
}
