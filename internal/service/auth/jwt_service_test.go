package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/lexilearn-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetime: time.Hour})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err, "zero lifetime is rejected")

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetime: 24 * time.Hour})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 24 * time.Hour
	svc := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))

	token, err := svc.GenerateToken(context.Background(), 42, "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	other, err := svc.GenerateToken(context.Background(), 42, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "each token carries a unique jti")
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Hour
	issuer := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))
	valid, err := issuer.GenerateToken(context.Background(), 7, "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		now     time.Time
		secret  string
		wantErr error
	}{
		{
			name:   "valid token",
			token:  func(t *testing.T) string { return valid },
			now:    fixedTime.Add(30 * time.Minute),
			secret: testSecret,
		},
		{
			name:    "expired token",
			token:   func(t *testing.T) string { return valid },
			now:     fixedTime.Add(lifetime + time.Minute),
			secret:  testSecret,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "wrong secret",
			token:   func(t *testing.T) string { return valid },
			now:     fixedTime,
			secret:  "wrong-secret-that-is-long-enough-for-testing",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "tampered payload",
			token:   func(t *testing.T) string { return valid[:len(valid)-4] + "AAAA" },
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong algorithm",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return s
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return s
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{UserID: 7}).
					SignedString([]byte(testSecret))
				require.NoError(t, err)
				return s
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "not yet valid",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: 7,
					RegisteredClaims: jwt.RegisteredClaims{
						NotBefore: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(2 * time.Hour)),
					},
				}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return s
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrTokenNotYetValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newHMACJWTService(tt.secret, lifetime, fixedClock(tt.now))

			claims, err := svc.ValidateToken(context.Background(), tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), claims.UserID)
		})
	}
}
