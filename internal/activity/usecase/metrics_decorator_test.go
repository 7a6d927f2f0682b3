package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/activity/usecase"
	"github.com/dheeverse/dheeverse/internal/activity/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectActivityMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "activity", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "activity", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestActivityUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Complete success", func(t *testing.T) {
		next := &mocks.MockActivityUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewActivityUseCaseWithMetrics(next, m)
		input := &domain.CompleteInput{Type: domain.TypeYoga}
		completion := &domain.Completion{ID: uuid.Must(uuid.NewV7())}

		next.On("Complete", ctx, userID, input).Return(completion, nil).Once()
		expectActivityMetrics(m, ctx, "activity_complete", "success")

		got, err := uc.Complete(ctx, userID, input)

		assert.NoError(t, err)
		assert.Equal(t, completion, got)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Stats error", func(t *testing.T) {
		next := &mocks.MockActivityUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewActivityUseCaseWithMetrics(next, m)
		statsErr := errors.New("boom")

		next.On("Stats", ctx, userID).Return(nil, statsErr).Once()
		expectActivityMetrics(m, ctx, "activity_stats", "error")

		_, err := uc.Stats(ctx, userID)

		assert.ErrorIs(t, err, statsErr)
		m.AssertExpectations(t)
	})

	t.Run("List and ListAll success", func(t *testing.T) {
		next := &mocks.MockActivityUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewActivityUseCaseWithMetrics(next, m)

		next.On("List", ctx, userID, 0, 10).Return([]*domain.Completion{}, nil).Once()
		next.On("ListAll", ctx, userID).Return([]*domain.Completion{}, nil).Once()
		expectActivityMetrics(m, ctx, "activity_list", "success")
		expectActivityMetrics(m, ctx, "activity_list_all", "success")

		_, err := uc.List(ctx, userID, 0, 10)
		assert.NoError(t, err)
		_, err = uc.ListAll(ctx, userID)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
}
