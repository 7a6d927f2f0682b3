package dto

import (
	"time"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

// SignUpResponse describes the account created by sign-up.
type SignUpResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// MapUserToSignUpResponse converts a freshly registered user to an API response.
func MapUserToSignUpResponse(user *userDomain.User) SignUpResponse {
	return SignUpResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Message: "Verification code sent",
	}
}

// SessionResponse carries the bearer token. The token is only returned once.
type SessionResponse struct {
	Token     string    `json:"token"` //nolint:gosec // returned once on login
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

// MapSessionToResponse converts an issued session to an API response.
func MapSessionToResponse(output *authDomain.SessionOutput) SessionResponse {
	return SessionResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		UserID:    output.UserID.String(),
	}
}
