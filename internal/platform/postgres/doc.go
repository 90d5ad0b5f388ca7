// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of query execution, error-code mapping, and data
// mapping between domain entities and database records.
//
// The schema is defined by goose SQL migrations embedded from the
// migrations directory and applied with Migrate.
package postgres
