// Package usecase implements recording and summarizing wellness activities.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
)

// CompletionRepository persists activity completions.
type CompletionRepository interface {
	Create(ctx context.Context, completion *domain.Completion) error
	// List returns completions newest first.
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Completion, error)
	// ListAll returns every completion oldest first.
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error)
	TotalsByType(ctx context.Context, userID uuid.UUID) ([]domain.TypeTotal, error)
	ListCompletionTimes(ctx context.Context, userID uuid.UUID, since time.Time) ([]time.Time, error)
}

// UseCase defines the activity operations. Notes are returned decrypted.
type UseCase interface {
	Complete(ctx context.Context, userID uuid.UUID, input *domain.CompleteInput) (*domain.Completion, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Completion, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error)
}
