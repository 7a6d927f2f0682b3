package domain

import (
	"time"

	"github.com/google/uuid"
)

// OTPCode is a hashed one-time code sent to Target.
type OTPCode struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Purpose    OTPPurpose
	CodeHash   string
	Target     string
	Attempts   int
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// IsUsable reports whether the code is unconsumed and unexpired at now.
func (o *OTPCode) IsUsable(now time.Time) bool {
	return o.ConsumedAt == nil && now.Before(o.ExpiresAt)
}
