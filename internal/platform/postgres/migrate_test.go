package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/lexilearn-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMigrationCommand(t *testing.T, name string, fn migrationFunc) {
	t.Helper()
	orig, had := migrationCommands[name]
	migrationCommands[name] = fn
	t.Cleanup(func() {
		if had {
			migrationCommands[name] = orig
		} else {
			delete(migrationCommands, name)
		}
	})
}

func TestMigrate(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	t.Run("runs command against embedded root", func(t *testing.T) {
		var gotDir string
		withMigrationCommand(t, "up", func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		})

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))

		require.NoError(t, Migrate(context.Background(), db, "up", log))
		assert.Equal(t, ".", gotDir)
		assert.Contains(t, buf.String(), "migration command completed")
	})

	t.Run("wraps command failure", func(t *testing.T) {
		cause := errors.New("relation already exists")
		withMigrationCommand(t, "down", func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			return cause
		})

		err := Migrate(context.Background(), db, "down", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "migration command 'down' failed")
	})

	t.Run("unknown command", func(t *testing.T) {
		err := Migrate(context.Background(), db, "sideways", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown migration command: sideways")
	})
}

func TestMigrationCommands(t *testing.T) {
	assert.Equal(t, []string{"down", "reset", "status", "up", "version"}, MigrationCommands())
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.Len(t, files, 4)

	for _, name := range files {
		content, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "-- +goose Up"), "%s lacks an Up section", name)
		assert.True(t, strings.Contains(string(content), "-- +goose Down"), "%s lacks a Down section", name)
	}

	users, err := fs.ReadFile(migrations.FS, "20250101000001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "email VARCHAR(256) NOT NULL UNIQUE")
}
