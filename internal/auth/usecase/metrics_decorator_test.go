package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	"github.com/dheeverse/dheeverse/internal/auth/usecase"
	usecaseMocks "github.com/dheeverse/dheeverse/internal/auth/usecase/mocks"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
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

func expectAuthMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestAuthUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockAuthUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()

	t.Run("SignUp success", func(t *testing.T) {
		input := &authDomain.SignUpInput{Name: "Asha", Email: "asha@example.com", Password: "Secure-Pass1"}
		user := &userDomain.User{ID: uuid.New()}

		mockNext.On("SignUp", ctx, input).Return(user, nil).Once()
		expectAuthMetrics(mockMetrics, ctx, "signup", "success")

		res, err := uc.SignUp(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Login error", func(t *testing.T) {
		input := &authDomain.LoginInput{Email: "asha@example.com", Password: "wrong"}

		mockNext.On("Login", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
		expectAuthMetrics(mockMetrics, ctx, "login", "error")

		res, err := uc.Login(ctx, input)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("VerifyEmail success", func(t *testing.T) {
		output := &authDomain.SessionOutput{Token: "plain-token"}

		mockNext.On("VerifyEmail", ctx, "asha@example.com", "123456").Return(output, nil).Once()
		expectAuthMetrics(mockMetrics, ctx, "verify_email", "success")

		res, err := uc.VerifyEmail(ctx, "asha@example.com", "123456")
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ResendOTP success", func(t *testing.T) {
		mockNext.On("ResendOTP", ctx, "asha@example.com").Return(nil).Once()
		expectAuthMetrics(mockMetrics, ctx, "resend_otp", "success")

		assert.NoError(t, uc.ResendOTP(ctx, "asha@example.com"))
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate error", func(t *testing.T) {
		mockNext.On("Authenticate", ctx, "token-hash").Return(nil, errors.New("db down")).Once()
		expectAuthMetrics(mockMetrics, ctx, "authenticate", "error")

		_, err := uc.Authenticate(ctx, "token-hash")
		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Logout success", func(t *testing.T) {
		mockNext.On("Logout", ctx, "token-hash").Return(nil).Once()
		expectAuthMetrics(mockMetrics, ctx, "logout", "success")

		assert.NoError(t, uc.Logout(ctx, "token-hash"))
		mockMetrics.AssertExpectations(t)
	})
}
