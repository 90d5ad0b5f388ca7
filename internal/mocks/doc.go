// Package mocks provides centralized test doubles for the store, service and
// platform interfaces.
//
// Each mock keeps a small in-memory state so multi-step flows (register,
// verify, login) can be exercised end to end, and exposes function fields
// that override the default behavior of a single method:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("connection reset")
//	}
package mocks
