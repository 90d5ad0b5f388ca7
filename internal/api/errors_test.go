package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/lexilearn-api/internal/api/shared"
	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/service/auth"
	"github.com/phrazzld/lexilearn-api/internal/service/catalog"
	"github.com/phrazzld/lexilearn-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"empty email", domain.ErrEmptyEmail, http.StatusBadRequest, MsgInvalidEmail},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest, MsgInvalidEmail},
		{"email taken", auth.ErrEmailTaken, http.StatusConflict, MsgEmailTaken},
		{"mail delivery", fmt.Errorf("%w: 550 rejected", auth.ErrMailDelivery), http.StatusBadGateway, MsgMailDelivery},
		{"missing verify fields", auth.ErrMissingVerifyFields, http.StatusBadRequest, MsgVerifyFieldsNeeded},
		{"short password", domain.ErrPasswordTooShort, http.StatusBadRequest, MsgPasswordTooShort},
		{"long password", domain.ErrPasswordTooLong, http.StatusBadRequest, MsgPasswordTooLong},
		{"unknown user", auth.ErrUserNotFound, http.StatusNotFound, MsgUserNotFound},
		{"already verified", auth.ErrAlreadyVerified, http.StatusBadRequest, MsgAlreadyVerified},
		{"invalid code", auth.ErrInvalidCode, http.StatusBadRequest, MsgInvalidCode},
		{"missing credentials", auth.ErrMissingCredentials, http.StatusBadRequest, MsgCredentialsNeeded},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, MsgInvalidToken},
		{"unauthenticated", domain.ErrUnauthorized, http.StatusUnauthorized, MsgAuthRequired},
		{"unknown vocab", catalog.ErrVocabNotFound, http.StatusNotFound, MsgVocabNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound, MsgNotFound},
		{"malformed json", shared.ErrInvalidJSON, http.StatusBadRequest, MsgInvalidRequest},
		{"body too large", shared.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, MsgBodyTooLarge},
		{"generic validation", domain.ErrValidation, http.StatusBadRequest, MsgInvalidRequest},
		{"store duplicate", fmt.Errorf("%w: users_email_key", store.ErrDuplicate), http.StatusInternalServerError, MsgUnexpected},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMessage, GetSafeErrorMessage(tt.err))
		})
	}

	assert.Equal(t, MsgUnexpected, GetSafeErrorMessage(nil))
}
