package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// PostgresVerificationCodeStore implements store.VerificationCodeStore
// on the email_verifications table.
type PostgresVerificationCodeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVerificationCodeStore creates a new PostgreSQL implementation of the
// VerificationCodeStore interface. If logger is nil, a default logger will be used.
func NewPostgresVerificationCodeStore(db store.DBTX, logger *slog.Logger) *PostgresVerificationCodeStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVerificationCodeStore{
		db:     db,
		logger: logger.With(slog.String("component", "verification_store")),
	}
}

var _ store.VerificationCodeStore = (*PostgresVerificationCodeStore)(nil)

// Create implements store.VerificationCodeStore.Create
func (s *PostgresVerificationCodeStore) Create(ctx context.Context, code *domain.VerificationCode) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO email_verifications (user_id, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		code.UserID,
		code.Code,
		code.ExpiresAt,
		code.CreatedAt,
	).Scan(&code.ID)
	if err != nil {
		log.Error("failed to create verification code",
			slog.Int64("user_id", code.UserID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("verification code created",
		slog.Int64("user_id", code.UserID),
		slog.Time("expires_at", code.ExpiresAt))
	return nil
}

// FindActive implements store.VerificationCodeStore.FindActive
func (s *PostgresVerificationCodeStore) FindActive(
	ctx context.Context,
	userID int64,
	code string,
	now time.Time,
) (*domain.VerificationCode, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, code, expires_at, created_at
		FROM email_verifications
		WHERE user_id = $1 AND code = $2 AND expires_at > $3
		ORDER BY id DESC
		LIMIT 1
	`

	var vc domain.VerificationCode
	err := s.db.QueryRowContext(ctx, query, userID, code, now).Scan(
		&vc.ID,
		&vc.UserID,
		&vc.Code,
		&vc.ExpiresAt,
		&vc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no active verification code", slog.Int64("user_id", userID))
			return nil, store.ErrCodeNotFound
		}
		log.Error("failed to look up verification code",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &vc, nil
}

// DeleteByUserID implements store.VerificationCodeStore.DeleteByUserID
func (s *PostgresVerificationCodeStore) DeleteByUserID(ctx context.Context, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM email_verifications WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete verification codes",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if n, err := result.RowsAffected(); err == nil {
		log.Debug("verification codes deleted",
			slog.Int64("user_id", userID),
			slog.Int64("count", n))
	}
	return nil
}

// DeleteByUserAndCode implements store.VerificationCodeStore.DeleteByUserAndCode
func (s *PostgresVerificationCodeStore) DeleteByUserAndCode(ctx context.Context, userID int64, code string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM email_verifications WHERE user_id = $1 AND code = $2`,
		userID, code)
	if err != nil {
		log.Error("failed to delete verification code",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// WithTx implements store.VerificationCodeStore.WithTx
func (s *PostgresVerificationCodeStore) WithTx(tx *sql.Tx) store.VerificationCodeStore {
	return &PostgresVerificationCodeStore{
		db:     tx,
		logger: s.logger,
	}
}
