package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexilearn-api/internal/platform/postgres"
)

// runMigrations executes one goose command against db using the embedded
// migration files.
func runMigrations(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	log.Info("Running database migrations", slog.String("command", command))

	if err := postgres.Migrate(ctx, db, command, log); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}

	log.Info("Database migrations finished", slog.String("command", command))
	return nil
}
