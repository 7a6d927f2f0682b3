package domain

import (
	"github.com/dheeverse/dheeverse/internal/errors"
)

// Authentication errors.
var (
	// ErrSessionNotFound indicates no session matches the token hash.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrInvalidCredentials covers unknown emails, wrong passwords and bad tokens alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrEmailNotVerified indicates a login attempt before the email was confirmed.
	ErrEmailNotVerified = errors.Wrap(errors.ErrForbidden, "email not verified")

	// ErrEmailAlreadyVerified indicates a verification for an already confirmed address.
	ErrEmailAlreadyVerified = errors.Wrap(errors.ErrConflict, "email already verified")

	// ErrOTPNotFound indicates there is no outstanding code for the user and purpose.
	ErrOTPNotFound = errors.Wrap(errors.ErrNotFound, "code not found")

	// ErrInvalidOTP indicates a wrong, expired or already used code.
	ErrInvalidOTP = errors.Wrap(errors.ErrInvalidInput, "invalid or expired code")

	// ErrOTPExhausted indicates the code was burned after too many wrong guesses.
	ErrOTPExhausted = errors.Wrap(errors.ErrLocked, "too many failed attempts")
)
