package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// MockVocabStore implements store.VocabStore in memory.
type MockVocabStore struct {
	ListFn           func(ctx context.Context) ([]domain.VocabList, error)
	GetByIDFn        func(ctx context.Context, id int64) (*domain.VocabList, error)
	RecordDownloadFn func(ctx context.Context, userID, vocabListID int64, at time.Time) error
	ListDownloadsFn  func(ctx context.Context, userID int64) ([]domain.VocabDownload, error)

	mu        sync.Mutex
	lists     []domain.VocabList
	downloads map[[2]int64]time.Time
}

var _ store.VocabStore = (*MockVocabStore)(nil)

// NewMockVocabStore creates a store holding lists.
func NewMockVocabStore(lists ...domain.VocabList) *MockVocabStore {
	return &MockVocabStore{
		lists:     lists,
		downloads: make(map[[2]int64]time.Time),
	}
}

// List implements store.VocabStore.
func (m *MockVocabStore) List(ctx context.Context) ([]domain.VocabList, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.VocabList, len(m.lists))
	copy(out, m.lists)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID implements store.VocabStore.
func (m *MockVocabStore) GetByID(ctx context.Context, id int64) (*domain.VocabList, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.lists {
		if v.ID == id {
			c := v
			return &c, nil
		}
	}
	return nil, store.ErrVocabNotFound
}

// RecordDownload implements store.VocabStore.
func (m *MockVocabStore) RecordDownload(ctx context.Context, userID, vocabListID int64, at time.Time) error {
	if m.RecordDownloadFn != nil {
		return m.RecordDownloadFn(ctx, userID, vocabListID, at)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads[[2]int64{userID, vocabListID}] = at
	return nil
}

// ListDownloads implements store.VocabStore.
func (m *MockVocabStore) ListDownloads(ctx context.Context, userID int64) ([]domain.VocabDownload, error) {
	if m.ListDownloadsFn != nil {
		return m.ListDownloadsFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.VocabDownload, 0)
	for key, at := range m.downloads {
		if key[0] != userID {
			continue
		}
		d := domain.VocabDownload{UserID: userID, VocabListID: key[1], DownloadedAt: at}
		for _, v := range m.lists {
			if v.ID == key[1] {
				d.Name = v.Name
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DownloadedAt.After(out[j].DownloadedAt) })
	return out, nil
}
