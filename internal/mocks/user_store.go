package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// MockUserStore implements store.UserStore in memory.
type MockUserStore struct {
	GetOrCreateUnverifiedFn func(ctx context.Context, email string) (*domain.User, bool, error)
	GetByEmailFn            func(ctx context.Context, email string) (*domain.User, error)
	MarkVerifiedFn          func(ctx context.Context, id int64, passwordHash string) error

	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

// Put inserts or replaces a user, assigning an ID when it has none.
func (m *MockUserStore) Put(user domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	m.users[user.Email] = &user
	u := user
	return &u
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// GetOrCreateUnverified implements store.UserStore.
func (m *MockUserStore) GetOrCreateUnverified(ctx context.Context, email string) (*domain.User, bool, error) {
	if m.GetOrCreateUnverifiedFn != nil {
		return m.GetOrCreateUnverifiedFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		c := *u
		return &c, false, nil
	}

	m.nextID++
	now := time.Now().UTC()
	u := &domain.User{ID: m.nextID, Email: email, CreatedAt: now, UpdatedAt: now}
	m.users[email] = u
	c := *u
	return &c, true, nil
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// MarkVerified implements store.UserStore.
func (m *MockUserStore) MarkVerified(ctx context.Context, id int64, passwordHash string) error {
	if m.MarkVerifiedFn != nil {
		return m.MarkVerifiedFn(ctx, id, passwordHash)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id && !u.IsVerified {
			u.PasswordHash = passwordHash
			u.IsVerified = true
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return store.ErrAlreadyVerified
}

// WithTx returns the same store; transactions are not simulated.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
