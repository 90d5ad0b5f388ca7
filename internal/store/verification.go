package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/domain"
)

// VerificationCodeStore persists one-time email verification codes.
type VerificationCodeStore interface {
	// Create inserts code and fills in its ID.
	Create(ctx context.Context, code *domain.VerificationCode) error

	// FindActive returns the code for userID equal to code that is still
	// valid at now (expires_at > now). Returns ErrCodeNotFound otherwise.
	FindActive(ctx context.Context, userID int64, code string, now time.Time) (*domain.VerificationCode, error)

	// DeleteByUserID removes every code for the user. Deleting zero rows is not an error.
	DeleteByUserID(ctx context.Context, userID int64) error

	// DeleteByUserAndCode removes a single issued code.
	DeleteByUserAndCode(ctx context.Context, userID int64, code string) error

	// WithTx returns a new VerificationCodeStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) VerificationCodeStore
}
