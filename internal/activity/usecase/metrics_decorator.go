package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/metrics"
)

// activityUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type activityUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewActivityUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewActivityUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &activityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *activityUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, "activity", operation, start, err)
}

func (a *activityUseCaseWithMetrics) Complete(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.CompleteInput,
) (*domain.Completion, error) {
	start := time.Now()
	completion, err := a.next.Complete(ctx, userID, input)
	a.record(ctx, "activity_complete", start, err)
	return completion, err
}

func (a *activityUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Completion, error) {
	start := time.Now()
	completions, err := a.next.List(ctx, userID, offset, limit)
	a.record(ctx, "activity_list", start, err)
	return completions, err
}

func (a *activityUseCaseWithMetrics) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error) {
	start := time.Now()
	completions, err := a.next.ListAll(ctx, userID)
	a.record(ctx, "activity_list_all", start, err)
	return completions, err
}

func (a *activityUseCaseWithMetrics) Stats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	start := time.Now()
	stats, err := a.next.Stats(ctx, userID)
	a.record(ctx, "activity_stats", start, err)
	return stats, err
}
