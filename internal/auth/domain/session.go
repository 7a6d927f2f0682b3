package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a login backed by an opaque bearer token. Only the SHA-256 hash
// of the token is stored.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsActive reports whether the session can still authenticate requests at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// SignUpInput contains the fields required to register an account.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains email and password credentials.
type LoginInput struct {
	Email    string
	Password string
}

// SessionOutput is returned once when a session is issued. Token is never stored.
type SessionOutput struct {
	Token     string
	ExpiresAt time.Time
	UserID    uuid.UUID
}
