// Package middleware holds the HTTP middleware of the gateway: bearer token
// authentication, per-request tracing and timing, and static asset serving.
package middleware
