// Package mocks provides a testify mock of the account settings use case.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dheeverse/dheeverse/internal/user/domain"
	"github.com/dheeverse/dheeverse/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockUserUseCase) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail string) error {
	args := m.Called(ctx, userID, newEmail)
	return args.Error(0)
}

func (m *MockUserUseCase) ConfirmEmailChange(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) SetArchivePIN(
	ctx context.Context,
	userID uuid.UUID,
	currentPIN *string,
	newPIN string,
) error {
	args := m.Called(ctx, userID, currentPIN, newPIN)
	return args.Error(0)
}

func (m *MockUserUseCase) VerifyArchivePIN(ctx context.Context, userID uuid.UUID, pin string) error {
	args := m.Called(ctx, userID, pin)
	return args.Error(0)
}
