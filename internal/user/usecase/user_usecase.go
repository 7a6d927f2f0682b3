package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	"github.com/dheeverse/dheeverse/internal/database"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	"github.com/dheeverse/dheeverse/internal/user/domain"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	sessionRevoker SessionRevoker
	otpUseCase     OTPUseCase
	outboxRepo     OutboxEventRepository
	hasher         PasswordHasher
	logger         *slog.Logger
}

// Get returns the user's profile.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password and revokes every other session
// in the same transaction as the update.
func (u *userUseCase) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.CurrentPassword, validation.Required.Error("current password is required")),
		validation.Field(&input.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.AccountPassword,
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	user, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !u.hasher.Compare(input.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCurrentPassword
	}

	passwordHash, err := u.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		user.PasswordHash = passwordHash
		user.UpdatedAt = now
		if err := u.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return u.sessionRevoker.RevokeAllByUserID(ctx, user.ID, input.SessionID, now)
	})
	if err != nil {
		return err
	}

	u.logger.Info("password changed", slog.String("user_id", user.ID.String()))
	return nil
}

// RequestEmailChange mails a code to the new address. The address is only
// swapped once the code comes back through ConfirmEmailChange.
func (u *userUseCase) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	err := validation.Validate(newEmail,
		validation.Required.Error("email is required"),
		appValidation.Email,
		validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Email == newEmail {
		return domain.ErrSameEmail
	}

	if err := u.ensureEmailAvailable(ctx, newEmail); err != nil {
		return err
	}

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.otpUseCase.Issue(ctx, user, authDomain.OTPPurposeEmailChange, newEmail)
	})
}

// ConfirmEmailChange consumes the email_change code and moves the account to
// the address the code was sent to. The previous address is notified.
func (u *userUseCase) ConfirmEmailChange(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	otp, err := u.otpUseCase.Verify(ctx, userID, authDomain.OTPPurposeEmailChange, code)
	if err != nil {
		return nil, err
	}

	if err := u.ensureEmailAvailable(ctx, otp.Target); err != nil {
		return nil, err
	}

	oldEmail := user.Email
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		user.Email = otp.Target
		user.UpdatedAt = time.Now().UTC()
		if err := u.userRepo.Update(ctx, user); err != nil {
			return err
		}

		event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventTypeEmailChanged, outboxDomain.EmailChangedPayload{
			OldEmail: oldEmail,
			NewEmail: user.Email,
			Name:     user.Name,
		})
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal event payload")
		}
		if err := u.outboxRepo.Create(ctx, event); err != nil {
			return apperrors.Wrap(err, "failed to create outbox event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("email changed", slog.String("user_id", user.ID.String()))
	return user, nil
}

// SetArchivePIN stores a hashed 4 to 6 digit PIN.
func (u *userUseCase) SetArchivePIN(
	ctx context.Context,
	userID uuid.UUID,
	currentPIN *string,
	newPIN string,
) error {
	if err := validation.Validate(newPIN, validation.Required, appValidation.PIN); err != nil {
		return appValidation.WrapValidationError(err)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.HasArchivePIN() {
		if currentPIN == nil || *currentPIN == "" {
			return domain.ErrCurrentPINRequired
		}
		if !u.hasher.Compare(*currentPIN, *user.ArchivePINHash) {
			return domain.ErrInvalidArchivePIN
		}
	}

	pinHash, err := u.hasher.Hash(newPIN)
	if err != nil {
		return err
	}

	user.ArchivePINHash = &pinHash
	user.UpdatedAt = time.Now().UTC()
	return u.userRepo.Update(ctx, user)
}

// VerifyArchivePIN checks pin against the stored archive PIN.
func (u *userUseCase) VerifyArchivePIN(ctx context.Context, userID uuid.UUID, pin string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.HasArchivePIN() {
		return domain.ErrArchivePINRequired
	}

	if pin == "" || !u.hasher.Compare(pin, *user.ArchivePINHash) {
		return domain.ErrInvalidArchivePIN
	}
	return nil
}

func (u *userUseCase) ensureEmailAvailable(ctx context.Context, email string) error {
	_, err := u.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrUserAlreadyExists
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// NewUserUseCase creates a new account settings use case.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	sessionRevoker SessionRevoker,
	otpUseCase OTPUseCase,
	outboxRepo OutboxEventRepository,
	hasher PasswordHasher,
	logger *slog.Logger,
) UseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		sessionRevoker: sessionRevoker,
		otpUseCase:     otpUseCase,
		outboxRepo:     outboxRepo,
		hasher:         hasher,
		logger:         logger,
	}
}
