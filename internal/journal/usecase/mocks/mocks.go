// Package mocks provides testify mocks for the journal use case and its dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	activityDomain "github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

// MockEntryRepository is a mock implementation of usecase.EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockEntryRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	archived bool,
	offset, limit int,
) ([]*domain.Entry, error) {
	args := m.Called(ctx, userID, archived, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListMoodPoints(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]domain.MoodPoint, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoodPoint), args.Error(1)
}

func (m *MockEntryRepository) ListEntryTimes(
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

func (m *MockEntryRepository) ListAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Entry, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListReminderRecipients(
	ctx context.Context,
	since time.Time,
) ([]domain.ReminderRecipient, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderRecipient), args.Error(1)
}

// MockActivityExporter is a mock implementation of usecase.ActivityExporter.
type MockActivityExporter struct {
	mock.Mock
}

func (m *MockActivityExporter) ListAll(ctx context.Context, userID uuid.UUID) ([]*activityDomain.Completion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activityDomain.Completion), args.Error(1)
}

// MockJournalUseCase is a mock implementation of usecase.UseCase.
type MockJournalUseCase struct {
	mock.Mock
}

func (m *MockJournalUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.CreateEntryInput,
) (*domain.Entry, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockJournalUseCase) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockJournalUseCase) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Entry, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockJournalUseCase) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	input *domain.UpdateEntryInput,
) (*domain.Entry, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockJournalUseCase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockJournalUseCase) Archive(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockJournalUseCase) Unarchive(ctx context.Context, userID, id uuid.UUID, pin string) (*domain.Entry, error) {
	args := m.Called(ctx, userID, id, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockJournalUseCase) ListArchived(
	ctx context.Context,
	userID uuid.UUID,
	pin string,
	offset, limit int,
) ([]*domain.Entry, error) {
	args := m.Called(ctx, userID, pin, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockJournalUseCase) MoodAnalytics(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) (*domain.MoodAnalytics, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoodAnalytics), args.Error(1)
}

func (m *MockJournalUseCase) Export(ctx context.Context, userID uuid.UUID) (*domain.Export, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Export), args.Error(1)
}

func (m *MockJournalUseCase) ReencryptLegacy(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalUseCase) EnqueueReminders(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
