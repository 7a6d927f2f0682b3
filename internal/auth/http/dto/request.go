// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	customValidation "github.com/dheeverse/dheeverse/internal/validation"
)

// SignUpRequest contains the parameters for registering an account.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the sign-up request is valid.
func (r *SignUpRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// ToDomain converts the request to a use case input.
func (r *SignUpRequest) ToDomain() *authDomain.SignUpInput {
	return &authDomain.SignUpInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// VerifyEmailRequest contains the email and the code mailed to it.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate checks if the verify email request is valid.
func (r *VerifyEmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Code,
			validation.Required,
			validation.Length(authDomain.OTPLength, authDomain.OTPLength),
		),
	)
}

// ResendOTPRequest asks for a fresh verification code.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// Validate checks if the resend request is valid.
func (r *ResendOTPRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
	)
}

// LoginRequest contains email and password credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// ToDomain converts the request to a use case input.
func (r *LoginRequest) ToDomain() *authDomain.LoginInput {
	return &authDomain.LoginInput{Email: r.Email, Password: r.Password}
}
