package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when a write violates a schema constraint
	// (foreign key, check or not-null).
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when a conditional update matched no row.
	ErrUpdateFailed = errors.New("update failed")

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrVocabNotFound indicates that the requested vocab list does not exist in the store.
	ErrVocabNotFound = fmt.Errorf("%w: vocab list", ErrNotFound)

	// ErrCodeNotFound indicates that no active verification code matched.
	ErrCodeNotFound = fmt.Errorf("%w: verification code", ErrNotFound)

	// ErrAlreadyVerified is returned by MarkVerified when the user was
	// verified by someone else first.
	ErrAlreadyVerified = fmt.Errorf("%w: user already verified", ErrUpdateFailed)
)
