package mocks

import (
	"context"

	"github.com/phrazzld/lexilearn-api/internal/store"
)

// MockTxRunner implements store.TxRunner by calling fn with a nil *sql.Tx.
// Mock stores ignore the transaction handle.
type MockTxRunner struct {
	// Err, when set, is returned instead of running fn, as if BEGIN failed.
	Err   error
	Calls int
}

var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTransaction implements store.TxRunner.
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}
