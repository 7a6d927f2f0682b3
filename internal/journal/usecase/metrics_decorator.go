package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/journal/domain"
	"github.com/dheeverse/dheeverse/internal/metrics"
)

// journalUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type journalUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewJournalUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewJournalUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &journalUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (j *journalUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, j.metrics, "journal", operation, start, err)
}

func (j *journalUseCaseWithMetrics) Create(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.CreateEntryInput,
) (*domain.Entry, error) {
	start := time.Now()
	entry, err := j.next.Create(ctx, userID, input)
	j.record(ctx, "entry_create", start, err)
	return entry, err
}

func (j *journalUseCaseWithMetrics) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error) {
	start := time.Now()
	entry, err := j.next.Get(ctx, userID, id)
	j.record(ctx, "entry_get", start, err)
	return entry, err
}

func (j *journalUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Entry, error) {
	start := time.Now()
	entries, err := j.next.List(ctx, userID, offset, limit)
	j.record(ctx, "entry_list", start, err)
	return entries, err
}

func (j *journalUseCaseWithMetrics) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	input *domain.UpdateEntryInput,
) (*domain.Entry, error) {
	start := time.Now()
	entry, err := j.next.Update(ctx, userID, id, input)
	j.record(ctx, "entry_update", start, err)
	return entry, err
}

func (j *journalUseCaseWithMetrics) Delete(ctx context.Context, userID, id uuid.UUID) error {
	start := time.Now()
	err := j.next.Delete(ctx, userID, id)
	j.record(ctx, "entry_delete", start, err)
	return err
}

func (j *journalUseCaseWithMetrics) Archive(ctx context.Context, userID, id uuid.UUID) error {
	start := time.Now()
	err := j.next.Archive(ctx, userID, id)
	j.record(ctx, "entry_archive", start, err)
	return err
}

func (j *journalUseCaseWithMetrics) Unarchive(
	ctx context.Context,
	userID, id uuid.UUID,
	pin string,
) (*domain.Entry, error) {
	start := time.Now()
	entry, err := j.next.Unarchive(ctx, userID, id, pin)
	j.record(ctx, "entry_unarchive", start, err)
	return entry, err
}

func (j *journalUseCaseWithMetrics) ListArchived(
	ctx context.Context,
	userID uuid.UUID,
	pin string,
	offset, limit int,
) ([]*domain.Entry, error) {
	start := time.Now()
	entries, err := j.next.ListArchived(ctx, userID, pin, offset, limit)
	j.record(ctx, "archive_list", start, err)
	return entries, err
}

func (j *journalUseCaseWithMetrics) MoodAnalytics(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) (*domain.MoodAnalytics, error) {
	start := time.Now()
	analytics, err := j.next.MoodAnalytics(ctx, userID, from, to)
	j.record(ctx, "mood_analytics", start, err)
	return analytics, err
}

func (j *journalUseCaseWithMetrics) Export(ctx context.Context, userID uuid.UUID) (*domain.Export, error) {
	start := time.Now()
	export, err := j.next.Export(ctx, userID)
	j.record(ctx, "export", start, err)
	return export, err
}

func (j *journalUseCaseWithMetrics) ReencryptLegacy(ctx context.Context, batchSize int) (int, error) {
	start := time.Now()
	n, err := j.next.ReencryptLegacy(ctx, batchSize)
	j.record(ctx, "reencrypt_legacy", start, err)
	return n, err
}

func (j *journalUseCaseWithMetrics) EnqueueReminders(ctx context.Context, now time.Time) (int, error) {
	start := time.Now()
	n, err := j.next.EnqueueReminders(ctx, now)
	j.record(ctx, "enqueue_reminders", start, err)
	return n, err
}
