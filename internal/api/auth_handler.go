package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexilearn-api/internal/api/shared"
	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
	"github.com/phrazzld/lexilearn-api/internal/service/auth"
)

// AuthHandler handles the /user registration, verification and login endpoints.
type AuthHandler struct {
	authService auth.Service
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /user/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req, domain.ErrEmptyEmail); err != nil {
		HandleAPIError(w, r, err, MsgRegisterFailed)
		return
	}

	if err := h.authService.Register(r.Context(), req.Email); err != nil {
		HandleAPIError(w, r, err, MsgRegisterFailed)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgCodeSent)
}

// Verify handles POST /user/verify.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeAndValidate(r, &req, auth.ErrMissingVerifyFields); err != nil {
		HandleAPIError(w, r, err, MsgVerifyFailed)
		return
	}

	if err := h.authService.Verify(r.Context(), req.Email, string(req.Code), req.Password); err != nil {
		HandleAPIError(w, r, err, MsgVerifyFailed)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgVerified)
}

// Login handles POST /user/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req, auth.ErrMissingCredentials); err != nil {
		HandleAPIError(w, r, err, MsgLoginFailed)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, MsgLoginFailed)
		return
	}

	logger.FromContext(r.Context()).Debug("issued session token", slog.Int64("user_id", result.User.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: MsgLoginSucceeded,
		Token:   result.Token,
		User:    userToResponse(result.User),
	})
}
