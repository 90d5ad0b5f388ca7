package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// MockVerificationCodeStore implements store.VerificationCodeStore in memory.
type MockVerificationCodeStore struct {
	CreateFn              func(ctx context.Context, code *domain.VerificationCode) error
	FindActiveFn          func(ctx context.Context, userID int64, code string, now time.Time) (*domain.VerificationCode, error)
	DeleteByUserIDFn      func(ctx context.Context, userID int64) error
	DeleteByUserAndCodeFn func(ctx context.Context, userID int64, code string) error

	mu     sync.Mutex
	codes  []domain.VerificationCode
	nextID int64
}

var _ store.VerificationCodeStore = (*MockVerificationCodeStore)(nil)

// NewMockVerificationCodeStore creates an empty store.
func NewMockVerificationCodeStore() *MockVerificationCodeStore {
	return &MockVerificationCodeStore{}
}

// ForUser returns copies of the codes stored for userID.
func (m *MockVerificationCodeStore) ForUser(userID int64) []domain.VerificationCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.VerificationCode
	for _, c := range m.codes {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

// Create implements store.VerificationCodeStore.
func (m *MockVerificationCodeStore) Create(ctx context.Context, code *domain.VerificationCode) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, code)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	code.ID = m.nextID
	m.codes = append(m.codes, *code)
	return nil
}

// FindActive implements store.VerificationCodeStore.
func (m *MockVerificationCodeStore) FindActive(
	ctx context.Context,
	userID int64,
	code string,
	now time.Time,
) (*domain.VerificationCode, error) {
	if m.FindActiveFn != nil {
		return m.FindActiveFn(ctx, userID, code, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.codes) - 1; i >= 0; i-- {
		c := m.codes[i]
		if c.UserID == userID && c.Matches(code, now) {
			return &c, nil
		}
	}
	return nil, store.ErrCodeNotFound
}

// DeleteByUserID implements store.VerificationCodeStore.
func (m *MockVerificationCodeStore) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	m.remove(func(c domain.VerificationCode) bool { return c.UserID == userID })
	return nil
}

// DeleteByUserAndCode implements store.VerificationCodeStore.
func (m *MockVerificationCodeStore) DeleteByUserAndCode(ctx context.Context, userID int64, code string) error {
	if m.DeleteByUserAndCodeFn != nil {
		return m.DeleteByUserAndCodeFn(ctx, userID, code)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.remove(func(c domain.VerificationCode) bool { return c.UserID == userID && c.Code == code })
	return nil
}

func (m *MockVerificationCodeStore) remove(match func(domain.VerificationCode) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.codes[:0]
	for _, c := range m.codes {
		if !match(c) {
			kept = append(kept, c)
		}
	}
	m.codes = kept
}

// WithTx returns the same store; transactions are not simulated.
func (m *MockVerificationCodeStore) WithTx(tx *sql.Tx) store.VerificationCodeStore {
	return m
}
