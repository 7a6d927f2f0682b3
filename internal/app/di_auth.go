package app

import (
	"database/sql"
	"fmt"

	authRepository "github.com/dheeverse/dheeverse/internal/auth/repository"
	authService "github.com/dheeverse/dheeverse/internal/auth/service"
	authUseCase "github.com/dheeverse/dheeverse/internal/auth/usecase"
	outboxRepository "github.com/dheeverse/dheeverse/internal/outbox/repository"
	userUseCase "github.com/dheeverse/dheeverse/internal/user/usecase"
)

// PasswordService returns the Argon2id hasher for passwords, PINs and one-time codes.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	return resolve(c, &c.passwordServiceInit, "passwordService", &c.passwordService, authService.NewPasswordService)
}

// TokenService returns the session token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// SessionRepository returns the session repository based on database driver.
func (c *Container) SessionRepository() (sessionStore, error) {
	return resolve(c, &c.sessionRepoInit, "sessionRepo", &c.sessionRepo, func() (sessionStore, error) {
		return repositoryFor(c, "session repository",
			func(db *sql.DB) sessionStore { return authRepository.NewPostgreSQLSessionRepository(db) },
			func(db *sql.DB) sessionStore { return authRepository.NewMySQLSessionRepository(db) },
		)
	})
}

// OTPRepository returns the one-time code repository based on database driver.
func (c *Container) OTPRepository() (authUseCase.OTPRepository, error) {
	return resolve(c, &c.otpRepoInit, "otpRepo", &c.otpRepo, func() (authUseCase.OTPRepository, error) {
		return repositoryFor(c, "otp repository",
			func(db *sql.DB) authUseCase.OTPRepository { return authRepository.NewPostgreSQLOTPRepository(db) },
			func(db *sql.DB) authUseCase.OTPRepository { return authRepository.NewMySQLOTPRepository(db) },
		)
	})
}

// OutboxRepository returns the outbox event repository based on database driver.
func (c *Container) OutboxRepository() (outboxStore, error) {
	return resolve(c, &c.outboxRepoInit, "outboxRepo", &c.outboxRepo, func() (outboxStore, error) {
		return repositoryFor(c, "outbox repository",
			func(db *sql.DB) outboxStore { return outboxRepository.NewPostgreSQLOutboxEventRepository(db) },
			func(db *sql.DB) outboxStore { return outboxRepository.NewMySQLOutboxEventRepository(db) },
		)
	})
}

// OTPUseCase returns the one-time code use case.
func (c *Container) OTPUseCase() (authUseCase.OTPUseCase, error) {
	return resolve(c, &c.otpUseCaseInit, "otpUseCase", &c.otpUseCase, c.initOTPUseCase)
}

// AuthUseCase returns the auth use case wrapped with business metrics.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	return resolve(c, &c.authUseCaseInit, "authUseCase", &c.authUseCase, c.initAuthUseCase)
}

// UserUseCase returns the account settings use case.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	return resolve(c, &c.userUseCaseInit, "userUseCase", &c.userUseCase, c.initUserUseCase)
}

func (c *Container) initOTPUseCase() (authUseCase.OTPUseCase, error) {
	otpRepo, err := c.OTPRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get otp repository for otp use case: %w", err)
	}
	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for otp use case: %w", err)
	}
	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for otp use case: %w", err)
	}

	return authUseCase.NewOTPUseCase(c.config, otpRepo, outboxRepo, passwordService, c.Logger()), nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}
	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for auth use case: %w", err)
	}
	otpUseCase, err := c.OTPUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get otp use case for auth use case: %w", err)
	}
	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for auth use case: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(
		c.config,
		txManager,
		userRepo,
		sessionRepo,
		otpUseCase,
		passwordService,
		c.TokenService(),
		c.Logger(),
	)
	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}
	sessionRepo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for user use case: %w", err)
	}
	otpUseCase, err := c.OTPUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get otp use case for user use case: %w", err)
	}
	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for user use case: %w", err)
	}
	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for user use case: %w", err)
	}

	return userUseCase.NewUserUseCase(
		txManager,
		userRepo,
		sessionRepo,
		otpUseCase,
		outboxRepo,
		passwordService,
		c.Logger(),
	), nil
}
