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

// PostgresVocabStore implements store.VocabStore on the vocab_lists and
// user_vocab_downloads tables.
type PostgresVocabStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabStore creates a new PostgreSQL implementation of the VocabStore interface.
func NewPostgresVocabStore(db store.DBTX, logger *slog.Logger) *PostgresVocabStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocab_store")),
	}
}

var _ store.VocabStore = (*PostgresVocabStore)(nil)

// List implements store.VocabStore.List
func (s *PostgresVocabStore) List(ctx context.Context) ([]domain.VocabList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, json_url, version, created_at, updated_at
		FROM vocab_lists
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to query vocab lists", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lists := make([]domain.VocabList, 0)
	for rows.Next() {
		var v domain.VocabList
		if err := rows.Scan(&v.ID, &v.Name, &v.JSONURL, &v.Version, &v.CreatedAt, &v.UpdatedAt); err != nil {
			log.Error("failed to scan vocab list", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		lists = append(lists, v)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating vocab lists", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("vocab lists retrieved", slog.Int("count", len(lists)))
	return lists, nil
}

// GetByID implements store.VocabStore.GetByID
func (s *PostgresVocabStore) GetByID(ctx context.Context, id int64) (*domain.VocabList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var v domain.VocabList
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, json_url, version, created_at, updated_at
		FROM vocab_lists
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.JSONURL, &v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocab list not found", slog.Int64("vocab_list_id", id))
			return nil, store.ErrVocabNotFound
		}
		log.Error("failed to get vocab list",
			slog.Int64("vocab_list_id", id),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &v, nil
}

// RecordDownload implements store.VocabStore.RecordDownload
func (s *PostgresVocabStore) RecordDownload(ctx context.Context, userID, vocabListID int64, at time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_vocab_downloads (user_id, vocab_list_id, downloaded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, vocab_list_id) DO UPDATE SET downloaded_at = EXCLUDED.downloaded_at
	`, userID, vocabListID, at)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("download references missing user or vocab list",
				slog.Int64("user_id", userID),
				slog.Int64("vocab_list_id", vocabListID))
		} else {
			log.Error("failed to record download",
				slog.Int64("user_id", userID),
				slog.Int64("vocab_list_id", vocabListID),
				slog.String("error", err.Error()))
		}
		return MapError(err)
	}

	return nil
}

// ListDownloads implements store.VocabStore.ListDownloads
func (s *PostgresVocabStore) ListDownloads(ctx context.Context, userID int64) ([]domain.VocabDownload, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.user_id, d.vocab_list_id, v.name, d.downloaded_at
		FROM user_vocab_downloads d
		JOIN vocab_lists v ON v.id = d.vocab_list_id
		WHERE d.user_id = $1
		ORDER BY d.downloaded_at DESC, d.vocab_list_id
	`, userID)
	if err != nil {
		log.Error("failed to query downloads",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	downloads := make([]domain.VocabDownload, 0)
	for rows.Next() {
		var d domain.VocabDownload
		if err := rows.Scan(&d.UserID, &d.VocabListID, &d.Name, &d.DownloadedAt); err != nil {
			log.Error("failed to scan download", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		downloads = append(downloads, d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return downloads, nil
}
