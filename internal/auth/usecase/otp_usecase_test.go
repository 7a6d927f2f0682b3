package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	"github.com/dheeverse/dheeverse/internal/auth/usecase"
	usecaseMocks "github.com/dheeverse/dheeverse/internal/auth/usecase/mocks"
	"github.com/dheeverse/dheeverse/internal/config"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

type otpFixture struct {
	otpRepo         *usecaseMocks.MockOTPRepository
	outboxRepo      *usecaseMocks.MockOutboxEventRepository
	passwordService *usecaseMocks.MockPasswordService
	useCase         usecase.OTPUseCase
}

func newOTPFixture() *otpFixture {
	f := &otpFixture{
		otpRepo:         &usecaseMocks.MockOTPRepository{},
		outboxRepo:      &usecaseMocks.MockOutboxEventRepository{},
		passwordService: &usecaseMocks.MockPasswordService{},
	}
	cfg := &config.Config{OTPExpiration: 10 * time.Minute, OTPMaxAttempts: 3}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.useCase = usecase.NewOTPUseCase(cfg, f.otpRepo, f.outboxRepo, f.passwordService, logger)
	return f
}

func TestOTPUseCase_Issue(t *testing.T) {
	ctx := context.Background()
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Name: "Asha", Email: "asha@example.com"}

	t.Run("Success_StoresHashAndEnqueuesMail", func(t *testing.T) {
		f := newOTPFixture()

		f.passwordService.On("GenerateOTP").Return("482913", "code-hash", nil).Once()
		f.otpRepo.On("Create", ctx, mock.MatchedBy(func(o *authDomain.OTPCode) bool {
			return o.UserID == user.ID &&
				o.CodeHash == "code-hash" &&
				o.Purpose == authDomain.OTPPurposeEmailChange &&
				o.Target == "new@example.com" &&
				o.ExpiresAt.Sub(o.CreatedAt) == 10*time.Minute
		})).Return(nil).Once()

		var captured *outboxDomain.OutboxEvent
		f.outboxRepo.On("Create", ctx, mock.AnythingOfType("*domain.OutboxEvent")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*outboxDomain.OutboxEvent)
			}).
			Return(nil).Once()

		err := f.useCase.Issue(ctx, user, authDomain.OTPPurposeEmailChange, "new@example.com")
		require.NoError(t, err)

		require.NotNil(t, captured)
		assert.Equal(t, outboxDomain.EventTypeOTPRequested, captured.EventType)

		var payload outboxDomain.OTPRequestedPayload
		require.NoError(t, json.Unmarshal([]byte(captured.Payload), &payload))
		assert.Equal(t, "new@example.com", payload.Email)
		assert.Equal(t, "482913", payload.Code)
		assert.Equal(t, "email_change", payload.Purpose)
		assert.Equal(t, 10, payload.ExpiresInMinutes)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newOTPFixture()

		f.passwordService.On("GenerateOTP").Return("482913", "code-hash", nil).Once()
		f.otpRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		err := f.useCase.Issue(ctx, user, authDomain.OTPPurposeEmailVerification, user.Email)

		assert.ErrorIs(t, err, assert.AnError)
		f.outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestOTPUseCase_Verify(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	purpose := authDomain.OTPPurposeEmailVerification

	freshCode := func() *authDomain.OTPCode {
		return &authDomain.OTPCode{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    userID,
			Purpose:   purpose,
			CodeHash:  "code-hash",
			ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
		}
	}

	t.Run("Success_ConsumesCode", func(t *testing.T) {
		f := newOTPFixture()
		otp := freshCode()

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(otp, nil).Once()
		f.passwordService.On("Compare", "482913", "code-hash").Return(true).Once()
		f.otpRepo.On("Update", ctx, mock.MatchedBy(func(o *authDomain.OTPCode) bool {
			return o.ConsumedAt != nil
		})).Return(nil).Once()

		result, err := f.useCase.Verify(ctx, userID, purpose, "482913")

		require.NoError(t, err)
		assert.NotNil(t, result.ConsumedAt)
		f.otpRepo.AssertExpectations(t)
	})

	t.Run("Error_NoCode", func(t *testing.T) {
		f := newOTPFixture()

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(nil, authDomain.ErrOTPNotFound).Once()

		_, err := f.useCase.Verify(ctx, userID, purpose, "482913")

		assert.ErrorIs(t, err, authDomain.ErrInvalidOTP)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		f := newOTPFixture()
		otp := freshCode()
		otp.ExpiresAt = time.Now().UTC().Add(-time.Second)

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(otp, nil).Once()

		_, err := f.useCase.Verify(ctx, userID, purpose, "482913")

		assert.ErrorIs(t, err, authDomain.ErrInvalidOTP)
		f.passwordService.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})

	t.Run("Error_AlreadyConsumed", func(t *testing.T) {
		f := newOTPFixture()
		otp := freshCode()
		consumedAt := time.Now().UTC()
		otp.ConsumedAt = &consumedAt

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(otp, nil).Once()

		_, err := f.useCase.Verify(ctx, userID, purpose, "482913")

		assert.ErrorIs(t, err, authDomain.ErrInvalidOTP)
	})

	t.Run("Error_WrongCodeCountsAttempt", func(t *testing.T) {
		f := newOTPFixture()
		otp := freshCode()

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(otp, nil).Once()
		f.passwordService.On("Compare", "000000", "code-hash").Return(false).Once()
		f.otpRepo.On("Update", ctx, mock.MatchedBy(func(o *authDomain.OTPCode) bool {
			return o.Attempts == 1 && o.ConsumedAt == nil
		})).Return(nil).Once()

		_, err := f.useCase.Verify(ctx, userID, purpose, "000000")

		assert.ErrorIs(t, err, authDomain.ErrInvalidOTP)
		f.otpRepo.AssertExpectations(t)
	})

	t.Run("Error_LastWrongGuessBurnsCode", func(t *testing.T) {
		f := newOTPFixture()
		otp := freshCode()
		otp.Attempts = 2

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(otp, nil).Once()
		f.passwordService.On("Compare", "000000", "code-hash").Return(false).Once()
		f.otpRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, err := f.useCase.Verify(ctx, userID, purpose, "000000")

		assert.ErrorIs(t, err, authDomain.ErrOTPExhausted)
	})

	t.Run("Error_ExhaustedRejectsCorrectCode", func(t *testing.T) {
		f := newOTPFixture()
		otp := freshCode()
		otp.Attempts = 3

		f.otpRepo.On("GetLatest", ctx, userID, purpose).Return(otp, nil).Once()

		_, err := f.useCase.Verify(ctx, userID, purpose, "482913")

		assert.ErrorIs(t, err, authDomain.ErrOTPExhausted)
		f.passwordService.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})
}
