// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Request-scoped loggers are carried in a
// context.Context so that handlers, services and stores log with the same
// trace_id.
package logger
