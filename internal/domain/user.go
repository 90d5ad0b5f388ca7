package domain

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

// Password length limits. The lower bound counts characters; the upper
// bound counts bytes because it is bcrypt's input limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// Common user validation errors
var (
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most %d bytes long", ErrValidation, MaxPasswordLength)
)

// emailPattern accepts <non-space>@<non-space>.<non-space>.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// User represents an account of the LexiLearn application.
// A user is created unverified with an empty password hash on the first
// registration attempt and becomes usable once the emailed code is verified.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanLogin reports whether the account has completed verification.
func (u *User) CanLogin() bool {
	return u.IsVerified && u.PasswordHash != ""
}

// ValidateEmail checks that email is present and has the basic
// <local>@<domain>.<tld> shape with no whitespace.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the password length policy.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
