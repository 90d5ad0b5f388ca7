package mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService. By default it issues tokens of
// the form "token-<id>-<email>" and accepts exactly those.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID int64, email string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64, email string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, email)
	}
	return fmt.Sprintf("token-%d-%s", userID, email), nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	rest, ok := strings.CutPrefix(tokenString, "token-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	idPart, email, ok := strings.Cut(rest, "-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return nil, auth.ErrInvalidToken
	}

	now := time.Now()
	return &auth.Claims{
		UserID:    id,
		Email:     email,
		Subject:   idPart,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}
