// Package catalog serves the read-only vocabulary catalog and keeps each
// user's download history.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// ErrVocabNotFound is returned when a vocab list id does not exist.
var ErrVocabNotFound = errors.New("vocab list not found")

// Download is what a client needs to fetch a vocab list's content.
type Download struct {
	JSONURL string `json:"jsonUrl"`
	Name    string `json:"name"`
}

// Service exposes catalog operations.
type Service interface {
	// ListVocabs returns every vocab list ordered by id.
	ListVocabs(ctx context.Context) ([]domain.VocabList, error)

	// DownloadVocab returns the download location of a vocab list. When
	// userID is non-nil the download is recorded in that user's history.
	DownloadVocab(ctx context.Context, id int64, userID *int64) (*Download, error)

	// ListDownloads returns the user's download history, newest first.
	ListDownloads(ctx context.Context, userID int64) ([]domain.VocabDownload, error)
}

type serviceImpl struct {
	vocab    store.VocabStore
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewService creates a catalog service backed by vocab.
func NewService(vocab store.VocabStore, logger *slog.Logger) (Service, error) {
	if vocab == nil {
		return nil, fmt.Errorf("vocab store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &serviceImpl{
		vocab:    vocab,
		logger:   logger.With(slog.String("component", "catalog_service")),
		timeFunc: time.Now,
	}, nil
}

func (s *serviceImpl) ListVocabs(ctx context.Context) ([]domain.VocabList, error) {
	lists, err := s.vocab.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list vocab lists",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list vocab lists: %w", err)
	}
	return lists, nil
}

func (s *serviceImpl) DownloadVocab(ctx context.Context, id int64, userID *int64) (*Download, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v, err := s.vocab.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrVocabNotFound) {
			log.Debug("vocab list not found", slog.Int64("vocab_list_id", id))
			return nil, ErrVocabNotFound
		}
		log.Error("failed to load vocab list",
			slog.Int64("vocab_list_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load vocab list: %w", err)
	}

	if userID != nil {
		// history is best effort; the download itself still succeeds
		if err := s.vocab.RecordDownload(ctx, *userID, v.ID, s.timeFunc().UTC()); err != nil {
			log.Warn("failed to record download",
				slog.Int64("user_id", *userID),
				slog.Int64("vocab_list_id", v.ID),
				slog.String("error", err.Error()))
		} else {
			log.Debug("download recorded",
				slog.Int64("user_id", *userID),
				slog.Int64("vocab_list_id", v.ID))
		}
	}

	return &Download{JSONURL: v.JSONURL, Name: v.Name}, nil
}

func (s *serviceImpl) ListDownloads(ctx context.Context, userID int64) ([]domain.VocabDownload, error) {
	downloads, err := s.vocab.ListDownloads(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list downloads",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}
	return downloads, nil
}
