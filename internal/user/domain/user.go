// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/errors"
)

// User represents a registered journal owner.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	PasswordHash    string
	EmailVerifiedAt *time.Time
	ArchivePINHash  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsVerified reports whether the user confirmed their email address.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

// HasArchivePIN reports whether an archive PIN has been set.
func (u *User) HasArchivePIN() bool {
	return u.ArchivePINHash != nil && *u.ArchivePINHash != ""
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCurrentPassword indicates the supplied current password does not match.
	ErrInvalidCurrentPassword = errors.Wrap(errors.ErrInvalidInput, "current password is incorrect")

	// ErrSameEmail indicates an email change to the address already on file.
	ErrSameEmail = errors.Wrap(errors.ErrInvalidInput, "new email matches the current email")

	// ErrArchivePINRequired indicates the archive is accessed before a PIN was set.
	ErrArchivePINRequired = errors.Wrap(errors.ErrForbidden, "archive PIN is not set")

	// ErrCurrentPINRequired indicates an existing PIN is being changed without the current one.
	ErrCurrentPINRequired = errors.Wrap(errors.ErrInvalidInput, "current archive PIN is required")

	// ErrInvalidArchivePIN indicates the supplied archive PIN does not match.
	ErrInvalidArchivePIN = errors.Wrap(errors.ErrUnauthorized, "invalid archive PIN")
)
