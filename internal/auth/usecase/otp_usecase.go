package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	authService "github.com/dheeverse/dheeverse/internal/auth/service"
	"github.com/dheeverse/dheeverse/internal/config"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

type otpUseCase struct {
	config          *config.Config
	otpRepo         OTPRepository
	outboxRepo      OutboxEventRepository
	passwordService authService.PasswordService
	logger          *slog.Logger
}

// Issue stores a hashed code and enqueues the mail carrying the plain code.
func (o *otpUseCase) Issue(
	ctx context.Context,
	user *userDomain.User,
	purpose authDomain.OTPPurpose,
	target string,
) error {
	code, codeHash, err := o.passwordService.GenerateOTP()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	otp := &authDomain.OTPCode{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		Purpose:   purpose,
		CodeHash:  codeHash,
		Target:    target,
		Attempts:  0,
		ExpiresAt: now.Add(o.config.OTPExpiration),
		CreatedAt: now,
	}
	if err := o.otpRepo.Create(ctx, otp); err != nil {
		return err
	}

	event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventTypeOTPRequested, outboxDomain.OTPRequestedPayload{
		Email:            target,
		Name:             user.Name,
		Code:             code,
		Purpose:          string(purpose),
		ExpiresInMinutes: int(o.config.OTPExpiration / time.Minute),
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event payload")
	}

	if err := o.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}

	return nil
}

// Verify checks code against the latest outstanding code for the purpose.
// Each wrong guess is persisted; the code is burned once attempts reach the limit.
func (o *otpUseCase) Verify(
	ctx context.Context,
	userID uuid.UUID,
	purpose authDomain.OTPPurpose,
	code string,
) (*authDomain.OTPCode, error) {
	otp, err := o.otpRepo.GetLatest(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, authDomain.ErrOTPNotFound) {
			return nil, authDomain.ErrInvalidOTP
		}
		return nil, err
	}

	now := time.Now().UTC()
	if !otp.IsUsable(now) {
		return nil, authDomain.ErrInvalidOTP
	}

	if otp.Attempts >= o.config.OTPMaxAttempts {
		return nil, authDomain.ErrOTPExhausted
	}

	if !o.passwordService.Compare(code, otp.CodeHash) {
		otp.Attempts++
		if err := o.otpRepo.Update(ctx, otp); err != nil {
			return nil, err
		}

		o.logger.Debug("one-time code mismatch",
			slog.String("user_id", userID.String()),
			slog.String("purpose", string(purpose)),
			slog.Int("attempts", otp.Attempts))

		if otp.Attempts >= o.config.OTPMaxAttempts {
			return nil, authDomain.ErrOTPExhausted
		}
		return nil, authDomain.ErrInvalidOTP
	}

	otp.ConsumedAt = &now
	if err := o.otpRepo.Update(ctx, otp); err != nil {
		return nil, err
	}

	return otp, nil
}

// NewOTPUseCase creates a new OTPUseCase with the provided dependencies.
func NewOTPUseCase(
	config *config.Config,
	otpRepo OTPRepository,
	outboxRepo OutboxEventRepository,
	passwordService authService.PasswordService,
	logger *slog.Logger,
) OTPUseCase {
	return &otpUseCase{
		config:          config,
		otpRepo:         otpRepo,
		outboxRepo:      outboxRepo,
		passwordService: passwordService,
		logger:          logger,
	}
}
