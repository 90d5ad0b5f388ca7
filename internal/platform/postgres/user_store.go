package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = `id, email, password_hash, is_verified, created_at, updated_at`

// GetOrCreateUnverified implements store.UserStore.GetOrCreateUnverified.
// The no-op DO UPDATE makes RETURNING yield the existing row and takes a
// row lock, so concurrent registrations for one email are serialized.
func (s *PostgresUserStore) GetOrCreateUnverified(
	ctx context.Context,
	email string,
) (*domain.User, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (email, password_hash, is_verified, created_at, updated_at)
		VALUES ($1, '', FALSE, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING ` + userColumns + `, (xmax = 0) AS created
	`

	var user domain.User
	var created bool
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
		&created,
	)
	if err != nil {
		log.Error("failed to get or create user",
			slog.String("email", email),
			slog.String("error", err.Error()))
		return nil, false, MapError(err)
	}

	log.Debug("user resolved for registration",
		slog.Int64("user_id", user.ID),
		slog.Bool("created", created),
		slog.Bool("is_verified", user.IsVerified))
	return &user, created, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Any("key", arg))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.Any("key", arg),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &user, nil
}

// MarkVerified implements store.UserStore.MarkVerified.
// The update only applies to rows that are still unverified.
func (s *PostgresUserStore) MarkVerified(ctx context.Context, id int64, passwordHash string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET password_hash = $2, is_verified = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_verified = FALSE
	`
	result, err := s.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		log.Error("failed to mark user verified",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "unverified user"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("user already verified or missing", slog.Int64("user_id", id))
			return fmt.Errorf("%w: user %d", store.ErrAlreadyVerified, id)
		}
		return err
	}

	log.Info("user verified", slog.Int64("user_id", id))
	return nil
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}
