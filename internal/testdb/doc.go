//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests using it are skipped unless
// LEXI_TEST_DATABASE_URL or DATABASE_URL is set.
package testdb
