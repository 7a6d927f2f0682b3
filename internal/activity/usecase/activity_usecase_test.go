package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/activity/usecase"
	"github.com/dheeverse/dheeverse/internal/activity/usecase/mocks"
	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
	cryptoService "github.com/dheeverse/dheeverse/internal/crypto/service"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

func newActivityUseCase() (usecase.UseCase, *mocks.MockCompletionRepository, cryptoService.FieldEncryptor) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	encryptor := cryptoService.NewAESCBCFieldEncryptor(
		cryptoService.NewConfigKeyLoader(strings.Repeat("ab", 32)),
		logger,
		nil,
	)
	repo := &mocks.MockCompletionRepository{}
	return usecase.NewActivityUseCase(repo, encryptor, logger), repo, encryptor
}

func strPtr(s string) *string { return &s }

func TestActivityUseCase_Complete(t *testing.T) {
	t.Run("Success_EncryptsNote", func(t *testing.T) {
		uc, repo, encryptor := newActivityUseCase()
		userID := uuid.Must(uuid.NewV7())

		var stored *domain.Completion
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Completion")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Completion) }).
			Return(nil).
			Once()

		completion, err := uc.Complete(context.Background(), userID, &domain.CompleteInput{
			Type:            domain.TypeBreathing,
			DurationSeconds: 300,
			Note:            strPtr("  felt lighter afterwards "),
		})

		require.NoError(t, err)
		assert.Equal(t, userID, completion.UserID)
		assert.Equal(t, "felt lighter afterwards", *completion.Note)

		require.NotNil(t, stored)
		require.NotNil(t, stored.Note)
		assert.True(t, cryptoDomain.IsToken(*stored.Note))
		plain, err := encryptor.Decrypt(*stored.Note)
		require.NoError(t, err)
		assert.Equal(t, "felt lighter afterwards", plain)
		repo.AssertExpectations(t)
	})

	t.Run("Success_BlankNoteDropped", func(t *testing.T) {
		uc, repo, _ := newActivityUseCase()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Completion) bool {
			return c.Note == nil
		})).Return(nil).Once()

		completion, err := uc.Complete(context.Background(), uuid.Must(uuid.NewV7()), &domain.CompleteInput{
			Type: domain.TypeGratitude,
			Note: strPtr("   "),
		})

		require.NoError(t, err)
		assert.Nil(t, completion.Note)
		repo.AssertExpectations(t)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input *domain.CompleteInput
		}{
			{"missing type", &domain.CompleteInput{DurationSeconds: 60}},
			{"unknown type", &domain.CompleteInput{Type: "running"}},
			{"negative duration", &domain.CompleteInput{Type: domain.TypeYoga, DurationSeconds: -1}},
			{"duration too long", &domain.CompleteInput{
				Type: domain.TypeYoga, DurationSeconds: domain.MaxDurationSeconds + 1,
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc, repo, _ := newActivityUseCase()

				_, err := uc.Complete(context.Background(), uuid.Must(uuid.NewV7()), tt.input)

				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Error_Repository", func(t *testing.T) {
		uc, repo, _ := newActivityUseCase()
		repoErr := errors.New("db down")
		repo.On("Create", mock.Anything, mock.Anything).Return(repoErr).Once()

		_, err := uc.Complete(context.Background(), uuid.Must(uuid.NewV7()), &domain.CompleteInput{
			Type: domain.TypeMudra,
		})

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestActivityUseCase_List(t *testing.T) {
	uc, repo, encryptor := newActivityUseCase()
	userID := uuid.Must(uuid.NewV7())
	token, err := encryptor.Encrypt("steady breath")
	require.NoError(t, err)

	completions := []*domain.Completion{
		{ID: uuid.Must(uuid.NewV7()), UserID: userID, Type: domain.TypeBreathing, Note: &token},
		{ID: uuid.Must(uuid.NewV7()), UserID: userID, Type: domain.TypeYoga},
	}
	repo.On("List", mock.Anything, userID, 0, 50).Return(completions, nil).Once()

	got, err := uc.List(context.Background(), userID, 0, 50)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "steady breath", *got[0].Note)
	assert.Nil(t, got[1].Note)
	repo.AssertExpectations(t)
}

func TestActivityUseCase_ListAll(t *testing.T) {
	uc, repo, _ := newActivityUseCase()
	userID := uuid.Must(uuid.NewV7())
	repoErr := errors.New("db down")
	repo.On("ListAll", mock.Anything, userID).Return(nil, repoErr).Once()

	_, err := uc.ListAll(context.Background(), userID)

	assert.ErrorIs(t, err, repoErr)
}

func TestActivityUseCase_Stats(t *testing.T) {
	uc, repo, _ := newActivityUseCase()
	userID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	repo.On("TotalsByType", mock.Anything, userID).Return([]domain.TypeTotal{
		{Type: domain.TypeBreathing, Count: 2, Seconds: 600},
		{Type: domain.TypeMindfulness, Count: 1, Seconds: 1200},
	}, nil).Once()
	repo.On("ListCompletionTimes", mock.Anything, userID, mock.AnythingOfType("time.Time")).
		Return([]time.Time{now.AddDate(0, 0, -1), now}, nil).
		Once()

	stats, err := uc.Stats(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCompletions)
	assert.Equal(t, 30, stats.TotalMinutes)
	assert.Equal(t, 2, stats.CountsByType[domain.TypeBreathing])
	assert.Equal(t, 2, stats.CurrentStreak)
	repo.AssertExpectations(t)
}
