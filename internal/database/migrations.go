package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/taskbot-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the lookup and filter indexes that are not declared on the models
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		name    string
		columns string
	}{
		// Listing filters by status and orders by creation time
		{&models.Task{}, "idx_tasks_status_created_at", "status, created_at"},
		{&models.Task{}, "idx_tasks_assignee_created_at", "assignee_id, created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			slog.Debug("Index already exists, skipping", "index", idx.name)
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to resolve table for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("Created index", "index", idx.name, "table", stmt.Schema.Table, "columns", idx.columns)
	}

	return nil
}
