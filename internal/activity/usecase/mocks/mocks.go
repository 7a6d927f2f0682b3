// Package mocks provides testify mocks for the activity use case and its repository.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
)

// MockCompletionRepository is a mock implementation of usecase.CompletionRepository.
type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	return m.Called(ctx, completion).Error(0)
}

func (m *MockCompletionRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepository) TotalsByType(ctx context.Context, userID uuid.UUID) ([]domain.TypeTotal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypeTotal), args.Error(1)
}

func (m *MockCompletionRepository) ListCompletionTimes(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

// MockActivityUseCase is a mock implementation of usecase.UseCase.
type MockActivityUseCase struct {
	mock.Mock
}

func (m *MockActivityUseCase) Complete(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.CompleteInput,
) (*domain.Completion, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Completion), args.Error(1)
}

func (m *MockActivityUseCase) List(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockActivityUseCase) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockActivityUseCase) Stats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
