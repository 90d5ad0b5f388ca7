package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  error
	}{
		{"a@b.com", nil},
		{"first.last+tag@sub.example.org", nil},
		{"", ErrEmptyEmail},
		{"plainaddress", ErrInvalidEmail},
		{"missing-dot@domain", ErrInvalidEmail},
		{"@b.com", ErrInvalidEmail},
		{"a@.", ErrInvalidEmail},
		{"a b@c.com", ErrInvalidEmail},
		{"a@b.com ", ErrInvalidEmail},
		{" a@b.com", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.Is(err, ErrValidation), "email errors should wrap ErrValidation")
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword(""), ErrEmptyPassword)
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("secret"))
	assert.NoError(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength)))
	assert.ErrorIs(t, ValidatePassword("ñññ"), ErrPasswordTooShort, "six bytes but three characters")
	assert.NoError(t, ValidatePassword("ñññúúú"))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("ñ", 37)), ErrPasswordTooLong, "37 characters is 74 bytes")
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength+1)), ErrPasswordTooLong)
}

func TestCanLogin(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "fresh registration", user: User{Email: "a@b.com"}, want: false},
		{name: "verified without hash", user: User{Email: "a@b.com", IsVerified: true}, want: false},
		{name: "verified with hash", user: User{Email: "a@b.com", IsVerified: true, PasswordHash: "$2a$10$hash"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.CanLogin())
		})
	}
}
