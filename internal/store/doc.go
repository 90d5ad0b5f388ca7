// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the services, so registration and catalog rules stay independent of
// the database. PostgreSQL implementations live in internal/platform/postgres.
package store
