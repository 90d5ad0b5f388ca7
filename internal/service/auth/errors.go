package auth

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lexilearn-api/internal/domain"
)

// Token errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)

// Registration and login errors. The API layer maps each to a status code.
var (
	// ErrEmailTaken is returned by Register when the email belongs to a verified account.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrUserNotFound is returned by Verify when no user has the email.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyVerified is returned by Verify for accounts that completed verification.
	ErrAlreadyVerified = errors.New("account already verified")

	// ErrInvalidCode covers both a wrong code and an expired one.
	ErrInvalidCode = errors.New("verification code is invalid or expired")

	// ErrInvalidCredentials is returned by Login for unknown users, unverified
	// users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password, or account not verified")

	// ErrMailDelivery is returned by Register when the verification email could not be sent.
	ErrMailDelivery = errors.New("failed to send verification email")

	// ErrMissingVerifyFields is returned when Verify is missing email, code or password.
	ErrMissingVerifyFields = fmt.Errorf("%w: email, code and password are required", domain.ErrValidation)

	// ErrMissingCredentials is returned when Login is missing email or password.
	ErrMissingCredentials = fmt.Errorf("%w: email and password are required", domain.ErrValidation)
)
