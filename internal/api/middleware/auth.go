package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/lexilearn-api/internal/api/shared"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/phrazzld/lexilearn-api/internal/redact"
	"github.com/phrazzld/lexilearn-api/internal/service/auth"
)

// Messages returned with 401 responses.
const (
	msgMissingHeader = "Authorization header required"
	msgBadFormat     = "Invalid authorization format"
	msgInvalidToken  = "Invalid or expired token"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate rejects requests without a valid bearer token with 401 and
// otherwise adds the user ID to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgMissingHeader)
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgBadFormat)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if isTokenError(err) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgInvalidToken, err)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), claims.UserID)))
	})
}

// OptionalAuthenticate adds the user ID to the context when the request
// carries a valid bearer token. Requests without one, or with a bad one,
// pass through unauthenticated.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("ignoring invalid optional token",
				slog.String("error", redact.Error(err)))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), claims.UserID)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

func isTokenError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrMissingToken)
}
