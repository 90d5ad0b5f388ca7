// Package api handles incoming HTTP requests, request validation and
// response formatting. Handlers translate HTTP requests into auth and
// catalog service calls, and map service errors to status codes and safe
// client messages in one place (errors.go).
package api
