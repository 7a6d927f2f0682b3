package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
)

// Entry is a journal entry. The embedded SensitiveFields hold plaintext in
// memory and ciphertext tokens at rest; every other field is stored as is.
type Entry struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Type   EntryType
	Title  string
	cryptoDomain.SensitiveFields
	Mood      Mood
	MoodScore int
	Tags      []string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateEntryInput contains the fields a user supplies for a new entry.
// A nil Mood asks the analyzer to tag the entry.
type CreateEntryInput struct {
	Type    EntryType
	Title   string
	Content string
	Mood    *Mood
	Tags    []string
}

// UpdateEntryInput contains the fields to change. Nil fields are left as they are.
type UpdateEntryInput struct {
	Title   *string
	Content *string
	Mood    *Mood
	Tags    []string
}

// MoodPoint is the unencrypted mood data of one entry used for analytics.
type MoodPoint struct {
	Mood      Mood
	MoodScore int
	CreatedAt time.Time
}

// ReminderRecipient is a verified user who has not written today.
type ReminderRecipient struct {
	UserID uuid.UUID
	Name   string
	Email  string
}
