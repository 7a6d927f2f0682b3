package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/user/domain"
)

// UserResponse is the external representation of a user. Credential and PIN
// hashes are never exposed.
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	HasArchivePIN bool       `json:"has_archive_pin"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to a UserResponse.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.IsVerified(),
		VerifiedAt:    user.EmailVerifiedAt,
		HasArchivePIN: user.HasArchivePIN(),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
