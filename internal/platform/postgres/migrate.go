package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the name of the table used by goose to track migrations.
const MigrationTableName = "schema_migrations"

type migrationFunc func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error

// migrationCommands maps the -migrate flag values to goose operations.
// Tests replace entries to avoid touching a database.
var migrationCommands = map[string]migrationFunc{
	"up":      goose.UpContext,
	"down":    goose.DownContext,
	"reset":   goose.ResetContext,
	"status":  goose.StatusContext,
	"version": goose.VersionContext,
}

// MigrationCommands returns the supported command names in sorted order.
func MigrationCommands() []string {
	names := make([]string, 0, len(migrationCommands))
	for name := range migrationCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("command", command))

	run, ok := migrationCommands[command]
	if !ok {
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, MigrationCommands())
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&slogGooseLogger{log: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	log.Info("running migrations")
	if err := run(ctx, db, "."); err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command completed", slog.Duration("duration", time.Since(start)))
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It does not exit; the error is returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}
