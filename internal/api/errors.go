package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/lexilearn-api/internal/api/shared"
	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/service/auth"
	"github.com/phrazzld/lexilearn-api/internal/service/catalog"
	"github.com/phrazzld/lexilearn-api/internal/store"
)

// Client-facing messages.
const (
	MsgInvalidEmail       = "Invalid email format"
	MsgEmailTaken         = "Email is already registered"
	MsgMailDelivery       = "Failed to send verification email, please try again later or check the email address"
	MsgRegisterFailed     = "Internal server error, registration failed"
	MsgCodeSent           = "Verification code sent to your email"
	MsgVerifyFieldsNeeded = "Email, code and password are required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
	MsgUserNotFound       = "User not found or email incorrect"
	MsgAlreadyVerified    = "Account already verified, please log in"
	MsgInvalidCode        = "Verification code is invalid or expired"
	MsgVerifyFailed       = "Internal server error, verification failed"
	MsgVerified           = "Account registered and verified successfully"
	MsgCredentialsNeeded  = "Email and password are required"
	MsgInvalidCredentials = "Invalid email or password, or account not verified"
	MsgLoginFailed        = "Internal server error, login failed"
	MsgLoginSucceeded     = "Login successful"
	MsgVocabNotFound      = "Vocab list not found"
	MsgInvalidToken       = "Invalid or expired token"
	MsgAuthRequired       = "Authentication required"
	MsgInvalidRequest     = "Invalid request format"
	MsgBodyTooLarge       = "Request body too large"
	MsgNotFound           = "Resource not found"
	MsgUnexpected         = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, catalog.ErrVocabNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, auth.ErrMailDelivery):
		return http.StatusBadGateway

	case errors.Is(err, auth.ErrAlreadyVerified),
		errors.Is(err, auth.ErrInvalidCode),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	switch {
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, auth.ErrEmailTaken):
		return MsgEmailTaken
	case errors.Is(err, auth.ErrMailDelivery):
		return MsgMailDelivery

	case errors.Is(err, auth.ErrMissingVerifyFields):
		return MsgVerifyFieldsNeeded
	case errors.Is(err, domain.ErrPasswordTooShort):
		return MsgPasswordTooShort
	case errors.Is(err, domain.ErrPasswordTooLong):
		return MsgPasswordTooLong
	case errors.Is(err, auth.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, auth.ErrAlreadyVerified):
		return MsgAlreadyVerified
	case errors.Is(err, auth.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidCode):
		return MsgInvalidCode

	case errors.Is(err, auth.ErrMissingCredentials):
		return MsgCredentialsNeeded
	case errors.Is(err, auth.ErrInvalidCredentials):
		return MsgInvalidCredentials

	case errors.Is(err, catalog.ErrVocabNotFound):
		return MsgVocabNotFound

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return MsgInvalidToken
	case errors.Is(err, domain.ErrUnauthorized):
		return MsgAuthRequired

	case errors.Is(err, shared.ErrBodyTooLarge):
		return MsgBodyTooLarge
	case errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, domain.ErrValidation):
		return MsgInvalidRequest

	case errors.Is(err, store.ErrNotFound):
		return MsgNotFound

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error. fallback replaces the message of 5xx responses when set,
// so each operation can name what failed.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
