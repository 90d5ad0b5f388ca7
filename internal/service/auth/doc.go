// Package auth implements the registration, email verification and login
// flow, and issues and validates the HS256 session tokens that protect the
// rest of the API.
//
// A user moves through three states: absent, registered but unverified
// (a row with no password and a pending emailed code), and verified.
// Register creates or reuses the unverified row and replaces its code,
// Verify sets the password and consumes the code, and Login issues a token
// only to verified users.
package auth
