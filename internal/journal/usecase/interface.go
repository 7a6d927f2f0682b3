// Package usecase implements the journal: entries, the PIN-protected archive,
// mood analytics, data export and the maintenance jobs run from the CLI.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	activityDomain "github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

// EntryRepository persists entries. Sensitive fields cross this boundary as
// ciphertext tokens only.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error

	// Update writes every mutable column. Returns ErrEntryNotFound if no row matched.
	Update(ctx context.Context, entry *domain.Entry) error

	// Delete removes the user's entry. Returns ErrEntryNotFound if no row matched.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Get returns the user's entry. Returns ErrEntryNotFound for unknown ids and
	// for entries owned by someone else.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error)

	// List returns entries newest first, filtered on the archived flag.
	List(ctx context.Context, userID uuid.UUID, archived bool, offset, limit int) ([]*domain.Entry, error)

	// ListAll returns every entry of the user, archived included, oldest first.
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error)

	// ListMoodPoints returns mood columns of non-archived entries created in [from, to).
	ListMoodPoints(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MoodPoint, error)

	// ListEntryTimes returns creation times of the user's entries since the given time.
	ListEntryTimes(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)

	// ListAfter pages through all entries of all users ordered by id.
	ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Entry, error)

	// ListReminderRecipients returns verified users without an entry since the given time.
	ListReminderRecipients(ctx context.Context, since time.Time) ([]domain.ReminderRecipient, error)
}

// ArchivePINVerifier checks the user's archive PIN.
type ArchivePINVerifier interface {
	VerifyArchivePIN(ctx context.Context, userID uuid.UUID, pin string) error
}

// UserReader loads the profile for exports.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// ActivityExporter returns the user's decrypted activity history.
type ActivityExporter interface {
	ListAll(ctx context.Context, userID uuid.UUID) ([]*activityDomain.Completion, error)
}

// OutboxEventRepository stores reminder mail jobs.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// UseCase defines the journal operations. Every entry returned holds plaintext.
type UseCase interface {
	Create(ctx context.Context, userID uuid.UUID, input *domain.CreateEntryInput) (*domain.Entry, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Entry, error)
	Update(ctx context.Context, userID, id uuid.UUID, input *domain.UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Archive hides an entry behind the archive PIN.
	Archive(ctx context.Context, userID, id uuid.UUID) error
	// Unarchive restores an archived entry after checking pin.
	Unarchive(ctx context.Context, userID, id uuid.UUID, pin string) (*domain.Entry, error)
	// ListArchived lists archived entries after checking pin.
	ListArchived(ctx context.Context, userID uuid.UUID, pin string, offset, limit int) ([]*domain.Entry, error)

	// MoodAnalytics aggregates the stored mood columns for the inclusive UTC
	// date range [from, to]. Content is never decrypted.
	MoodAnalytics(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.MoodAnalytics, error)

	// Export returns the profile, every entry and every activity in plaintext.
	Export(ctx context.Context, userID uuid.UUID) (*domain.Export, error)

	// ReencryptLegacy encrypts stored sensitive values that are not yet tokens.
	// Returns the number of entries rewritten.
	ReencryptLegacy(ctx context.Context, batchSize int) (int, error)

	// EnqueueReminders queues a reminder mail for every verified user who has
	// not written on now's UTC day. Returns the number queued.
	EnqueueReminders(ctx context.Context, now time.Time) (int, error)
}
