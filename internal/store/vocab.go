package store

import (
	"context"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
)

// VocabStore provides read access to the vocabulary catalog and
// read/write access to per-user download history.
type VocabStore interface {
	// List returns every vocab list ordered by id.
	List(ctx context.Context) ([]domain.VocabList, error)

	// GetByID returns the vocab list with the given id.
	// Returns ErrVocabNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.VocabList, error)

	// RecordDownload upserts the (userID, vocabListID) history row,
	// refreshing downloaded_at on repeat downloads.
	RecordDownload(ctx context.Context, userID, vocabListID int64, at time.Time) error

	// ListDownloads returns the user's download history, newest first.
	ListDownloads(ctx context.Context, userID int64) ([]domain.VocabDownload, error)
}
