// Package dto provides data transfer objects for the account settings HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

// ChangePasswordRequest carries the current and the new password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"` //nolint:gosec // request payload
	NewPassword     string `json:"new_password"`     //nolint:gosec // request payload
}

// Validate checks required fields. Strength is enforced by the use case.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
}

// EmailChangeRequest asks for a code at a new address.
type EmailChangeRequest struct {
	Email string `json:"email"`
}

// Validate checks the new address.
func (r *EmailChangeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, appValidation.Email),
	)
}

// ConfirmEmailChangeRequest carries the code sent to the new address.
type ConfirmEmailChangeRequest struct {
	Code string `json:"code"`
}

// Validate checks the code length.
func (r *ConfirmEmailChangeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code,
			validation.Required,
			validation.Length(authDomain.OTPLength, authDomain.OTPLength),
		),
	)
}

// ArchivePINRequest sets or replaces the archive PIN.
type ArchivePINRequest struct {
	CurrentPIN *string `json:"current_pin"`
	PIN        string  `json:"pin"`
}

// Validate checks the PIN format.
func (r *ArchivePINRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PIN, validation.Required, appValidation.PIN),
	)
}
