package domain

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

// CodeLength is the number of ASCII digits in a verification code.
const CodeLength = 6

// Codes are drawn uniformly from [codeMin, codeMin+codeSpan).
const (
	codeMin  = 100000
	codeSpan = 900000
)

// ErrInvalidCode is returned when a verification code is not six digits.
var ErrInvalidCode = fmt.Errorf("%w: verification code must be %d digits", ErrValidation, CodeLength)

// VerificationCode is a one-time code emailed to a user to prove ownership
// of the address. At most one code per user is active at a time.
type VerificationCode struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewVerificationCode issues a fresh random code for userID that expires ttl after now.
func NewVerificationCode(userID int64, now time.Time, ttl time.Duration) (*VerificationCode, error) {
	code, err := GenerateCode(rand.Reader)
	if err != nil {
		return nil, err
	}

	return &VerificationCode{
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(ttl).UTC(),
		CreatedAt: now.UTC(),
	}, nil
}

// GenerateCode draws a six-digit code uniformly from 100000..999999 using r.
func GenerateCode(r io.Reader) (string, error) {
	n, err := rand.Int(r, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

// IsExpired reports whether the code is no longer valid at now.
// A code is valid strictly before ExpiresAt.
func (c *VerificationCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Matches reports whether candidate equals the stored code and is still valid at now.
func (c *VerificationCode) Matches(candidate string, now time.Time) bool {
	return c.Code == candidate && !c.IsExpired(now)
}

// ValidateCodeFormat checks that code is exactly six ASCII digits.
func ValidateCodeFormat(code string) error {
	if len(code) != CodeLength {
		return ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrInvalidCode
		}
	}
	return nil
}
