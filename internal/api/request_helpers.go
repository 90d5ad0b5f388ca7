package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/lexilearn-api/internal/api/shared"
	"github.com/phrazzld/lexilearn-api/internal/domain"
)

// getUserIDFromContext returns the id placed in the context by the auth middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	return shared.GetUserID(r.Context())
}

// getPathID parses a positive integer id from the chi path parameter paramName.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, fmt.Sprintf("has invalid format: %q", raw), domain.ErrInvalidID)
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into req and runs its validation
// tags. A validation failure is wrapped in missing so the caller's sentinel
// decides the status and message.
func decodeAndValidate(r *http.Request, req interface{}, missing error) error {
	if err := shared.DecodeJSON(r, req); err != nil {
		return err
	}
	if err := shared.ValidateRequest(req); err != nil {
		return fmt.Errorf("%w: %v", missing, err)
	}
	return nil
}
