package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
	cryptoService "github.com/dheeverse/dheeverse/internal/crypto/service"
	"github.com/dheeverse/dheeverse/internal/streak"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

const (
	maxNoteLength  = 2000
	streakLookback = 366 * 24 * time.Hour
)

type activityUseCase struct {
	repo      CompletionRepository
	encryptor cryptoService.FieldEncryptor
	logger    *slog.Logger
}

func typeValues() []string {
	values := make([]string, 0, len(domain.Types))
	for _, t := range domain.Types {
		values = append(values, string(t))
	}
	return values
}

func validateCompleteInput(input *domain.CompleteInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Type,
			validation.Required,
			validation.By(func(value any) error {
				return validation.Validate(string(input.Type), appValidation.OneOf(typeValues()...))
			}),
		),
		validation.Field(&input.DurationSeconds, validation.Min(0), validation.Max(domain.MaxDurationSeconds)),
		validation.Field(&input.Note, validation.Length(0, maxNoteLength)),
	)
	return appValidation.WrapValidationError(err)
}

// Complete records a finished activity with its note encrypted.
func (a *activityUseCase) Complete(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.CompleteInput,
) (*domain.Completion, error) {
	if err := validateCompleteInput(input); err != nil {
		return nil, err
	}

	var note *string
	if input.Note != nil && strings.TrimSpace(*input.Note) != "" {
		trimmed := strings.TrimSpace(*input.Note)
		note = &trimmed
	}

	sealedNote, err := a.encryptor.EncryptValue(note)
	if err != nil {
		return nil, err
	}

	completion := &domain.Completion{
		ID:              uuid.Must(uuid.NewV7()),
		UserID:          userID,
		Type:            input.Type,
		DurationSeconds: input.DurationSeconds,
		Note:            sealedNote,
		CompletedAt:     time.Now().UTC(),
	}
	if err := a.repo.Create(ctx, completion); err != nil {
		return nil, err
	}

	a.logger.Debug("activity completed",
		slog.String("completion_id", completion.ID.String()),
		slog.String("type", string(completion.Type)))

	stored := *completion
	stored.Note = note
	return &stored, nil
}

func (a *activityUseCase) openAll(completions []*domain.Completion) ([]*domain.Completion, error) {
	for _, c := range completions {
		note, err := a.encryptor.DecryptValue(c.Note)
		if err != nil {
			return nil, err
		}
		c.Note = note
	}
	return completions, nil
}

// List returns a page of completions, newest first.
func (a *activityUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Completion, error) {
	completions, err := a.repo.List(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return a.openAll(completions)
}

// ListAll returns every completion, oldest first.
func (a *activityUseCase) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error) {
	completions, err := a.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.openAll(completions)
}

// Stats summarizes completions per type, total minutes and the daily streak.
func (a *activityUseCase) Stats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	totals, err := a.repo.TotalsByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	times, err := a.repo.ListCompletionTimes(ctx, userID, now.Add(-streakLookback))
	if err != nil {
		return nil, err
	}

	return domain.BuildStats(totals, streak.Current(times, now)), nil
}

// NewActivityUseCase creates the activity use case.
func NewActivityUseCase(
	repo CompletionRepository,
	encryptor cryptoService.FieldEncryptor,
	logger *slog.Logger,
) UseCase {
	return &activityUseCase{
		repo:      repo,
		encryptor: encryptor,
		logger:    logger,
	}
}
