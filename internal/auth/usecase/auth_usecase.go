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
	authService "github.com/dheeverse/dheeverse/internal/auth/service"
	"github.com/dheeverse/dheeverse/internal/config"
	"github.com/dheeverse/dheeverse/internal/database"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	config          *config.Config
	txManager       database.TxManager
	userRepo        UserRepository
	sessionRepo     SessionRepository
	otpUseCase      OTPUseCase
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	logger          *slog.Logger
}

// normalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignUpInput(input *authDomain.SignUpInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.AccountPassword,
		),
	)
	return appValidation.WrapValidationError(err)
}

// SignUp registers an unverified user. The user row, the verification code and
// the mail event are written in a single transaction.
func (a *authUseCase) SignUp(ctx context.Context, input *authDomain.SignUpInput) (*userDomain.User, error) {
	normalized := &authDomain.SignUpInput{
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Password: input.Password,
	}
	if err := validateSignUpInput(normalized); err != nil {
		return nil, err
	}

	passwordHash, err := a.passwordService.Hash(normalized.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return a.otpUseCase.Issue(ctx, user, authDomain.OTPPurposeEmailVerification, user.Email)
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("user signed up", slog.String("user_id", user.ID.String()))

	return user, nil
}

// VerifyEmail confirms the address with the emailed code and logs the user in.
// Unknown emails produce ErrInvalidOTP so the endpoint cannot probe accounts.
func (a *authUseCase) VerifyEmail(
	ctx context.Context,
	email string,
	code string,
) (*authDomain.SessionOutput, error) {
	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidOTP
		}
		return nil, err
	}

	if user.IsVerified() {
		return nil, authDomain.ErrEmailAlreadyVerified
	}

	if _, err := a.otpUseCase.Verify(ctx, user.ID, authDomain.OTPPurposeEmailVerification, code); err != nil {
		return nil, err
	}

	var output *authDomain.SessionOutput
	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		user.EmailVerifiedAt = &now
		user.UpdatedAt = now
		if err := a.userRepo.Update(ctx, user); err != nil {
			return err
		}

		var err error
		output, err = a.issueSession(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// ResendOTP mails a fresh verification code when the account exists and is unverified.
func (a *authUseCase) ResendOTP(ctx context.Context, email string) error {
	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			a.logger.Debug("otp resend for unknown email ignored")
			return nil
		}
		return err
	}

	if user.IsVerified() {
		a.logger.Debug("otp resend for verified user ignored", slog.String("user_id", user.ID.String()))
		return nil
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		return a.otpUseCase.Issue(ctx, user, authDomain.OTPPurposeEmailVerification, user.Email)
	})
}

// Login verifies the password before revealing whether the email is verified.
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.SessionOutput, error) {
	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsVerified() {
		return nil, authDomain.ErrEmailNotVerified
	}

	return a.issueSession(ctx, user.ID)
}

// Authenticate resolves a token hash to an active session. Unknown, expired
// and revoked sessions all return ErrInvalidCredentials.
func (a *authUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Session, error) {
	session, err := a.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !session.IsActive(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return session, nil
}

// Logout revokes the session. Logging out twice is not an error.
func (a *authUseCase) Logout(ctx context.Context, tokenHash string) error {
	session, err := a.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrSessionNotFound) {
			return authDomain.ErrInvalidCredentials
		}
		return err
	}

	if session.RevokedAt != nil {
		return nil
	}

	return a.sessionRepo.Revoke(ctx, session.ID, time.Now().UTC())
}

func (a *authUseCase) issueSession(ctx context.Context, userID uuid.UUID) (*authDomain.SessionOutput, error) {
	plainToken, tokenHash, err := a.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &authDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(a.config.AuthTokenExpiration),
		CreatedAt: now,
	}
	if err := a.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &authDomain.SessionOutput{
		Token:     plainToken,
		ExpiresAt: session.ExpiresAt,
		UserID:    userID,
	}, nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	config *config.Config,
	txManager database.TxManager,
	userRepo UserRepository,
	sessionRepo SessionRepository,
	otpUseCase OTPUseCase,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		config:          config,
		txManager:       txManager,
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		otpUseCase:      otpUseCase,
		passwordService: passwordService,
		tokenService:    tokenService,
		logger:          logger,
	}
}
