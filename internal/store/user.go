package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/lexilearn-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// GetOrCreateUnverified returns the user registered under email,
	// inserting an unverified row with an empty password hash when none exists.
	// The row is locked for the rest of the surrounding transaction.
	// created reports whether a new row was inserted.
	GetOrCreateUnverified(ctx context.Context, email string) (user *domain.User, created bool, err error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// MarkVerified stores passwordHash and sets is_verified for an
	// unverified user. Returns ErrAlreadyVerified when the user is
	// missing or was verified concurrently.
	MarkVerified(ctx context.Context, id int64, passwordHash string) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
