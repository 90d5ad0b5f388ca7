package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/lexilearn-api/internal/domain"
)

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	Email string `json:"email" validate:"required"`
}

// VerifyRequest is the body of POST /user/verify.
type VerifyRequest struct {
	Email    string    `json:"email"    validate:"required"`
	Code     CodeValue `json:"code"     validate:"required"`
	Password string    `json:"password" validate:"required"`
}

// CodeValue is a verification code that may arrive as a JSON string or
// as a JSON number. Numbers keep their literal digits.
type CodeValue string

// UnmarshalJSON implements json.Unmarshaler.
func (c *CodeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CodeValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code must be a string or a number: %w", err)
	}
	*c = CodeValue(n.String())
	return nil
}

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// VocabDownloadResponse is returned by GET /vocab/{id}.
type VocabDownloadResponse struct {
	JSONURL string `json:"jsonUrl"`
	Name    string `json:"name"`
}

// DownloadHistoryItem is one entry of GET /me/downloads.
type DownloadHistoryItem struct {
	VocabListID  int64  `json:"vocabListId"`
	Name         string `json:"name"`
	DownloadedAt string `json:"downloadedAt"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}
