package domain

import (
	"time"

	"github.com/google/uuid"

	activityDomain "github.com/dheeverse/dheeverse/internal/activity/domain"
)

// ExportProfile is the profile section of a data export.
type ExportProfile struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Export is a user's complete data with every sensitive field decrypted.
type Export struct {
	ExportedAt time.Time
	Profile    ExportProfile
	Entries    []*Entry
	Activities []*activityDomain.Completion
}
