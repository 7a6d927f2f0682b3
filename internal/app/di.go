// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	activityHTTP "github.com/dheeverse/dheeverse/internal/activity/http"
	activityUseCase "github.com/dheeverse/dheeverse/internal/activity/usecase"
	authHTTP "github.com/dheeverse/dheeverse/internal/auth/http"
	authService "github.com/dheeverse/dheeverse/internal/auth/service"
	authUseCase "github.com/dheeverse/dheeverse/internal/auth/usecase"
	"github.com/dheeverse/dheeverse/internal/config"
	cryptoService "github.com/dheeverse/dheeverse/internal/crypto/service"
	"github.com/dheeverse/dheeverse/internal/database"
	"github.com/dheeverse/dheeverse/internal/http"
	journalHTTP "github.com/dheeverse/dheeverse/internal/journal/http"
	journalUseCase "github.com/dheeverse/dheeverse/internal/journal/usecase"
	"github.com/dheeverse/dheeverse/internal/mail"
	"github.com/dheeverse/dheeverse/internal/metrics"
	outboxUseCase "github.com/dheeverse/dheeverse/internal/outbox/usecase"
	userHTTP "github.com/dheeverse/dheeverse/internal/user/http"
	userRepository "github.com/dheeverse/dheeverse/internal/user/repository"
	userUseCase "github.com/dheeverse/dheeverse/internal/user/usecase"
)

// userStore is the user repository surface shared by auth, account settings and export.
type userStore interface {
	authUseCase.UserRepository
	userUseCase.UserRepository
}

// sessionStore is the session repository surface shared by auth and account settings.
type sessionStore interface {
	authUseCase.SessionRepository
	userUseCase.SessionRevoker
}

// outboxStore stores outbox events for the use cases and feeds the worker.
type outboxStore interface {
	outboxUseCase.OutboxEventRepository
}

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Services
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	kmsService      cryptoService.KMSService
	fieldEncryptor  cryptoService.FieldEncryptor
	mailSender      mail.Sender

	// Repositories
	userRepo       userStore
	sessionRepo    sessionStore
	otpRepo        authUseCase.OTPRepository
	outboxRepo     outboxStore
	entryRepo      journalUseCase.EntryRepository
	completionRepo activityUseCase.CompletionRepository

	// Use Cases
	otpUseCase      authUseCase.OTPUseCase
	authUseCase     authUseCase.AuthUseCase
	userUseCase     userUseCase.UseCase
	journalUseCase  journalUseCase.UseCase
	activityUseCase activityUseCase.UseCase
	outboxUseCase   outboxUseCase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsInit         sync.Once
	txManagerInit       sync.Once
	passwordServiceInit sync.Once
	tokenServiceInit    sync.Once
	kmsServiceInit      sync.Once
	fieldEncryptorInit  sync.Once
	mailSenderInit      sync.Once
	userRepoInit        sync.Once
	sessionRepoInit     sync.Once
	otpRepoInit         sync.Once
	outboxRepoInit      sync.Once
	entryRepoInit       sync.Once
	completionRepoInit  sync.Once
	otpUseCaseInit      sync.Once
	authUseCaseInit     sync.Once
	userUseCaseInit     sync.Once
	journalUseCaseInit  sync.Once
	activityUseCaseInit sync.Once
	outboxUseCaseInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// resolve runs init once, storing its value in slot or its error under name.
// Later calls return the stored value or the stored error.
func resolve[T any](c *Container, once *sync.Once, name string, slot *T, init func() (T, error)) (T, error) {
	once.Do(func() {
		v, err := init()
		if err != nil {
			c.mu.Lock()
			c.initErrors[name] = err
			c.mu.Unlock()
			return
		}
		*slot = v
	})

	c.mu.Lock()
	err := c.initErrors[name]
	c.mu.Unlock()
	if err != nil {
		var zero T
		return zero, err
	}
	return *slot, nil
}

// repositoryFor picks the implementation matching the configured database driver.
func repositoryFor[T any](c *Container, name string, postgres, mysql func(*sql.DB) T) (T, error) {
	var zero T
	db, err := c.DB()
	if err != nil {
		return zero, fmt.Errorf("failed to get database for %s: %w", name, err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return mysql(db), nil
	case "postgres":
		return postgres(db), nil
	default:
		return zero, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	return resolve(c, &c.dbInit, "db", &c.db, c.initDB)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return resolve(c, &c.txManagerInit, "txManager", &c.txManager, func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	if err := c.initMetricsOnce(); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	if err := c.initMetricsOnce(); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

func (c *Container) initMetricsOnce() error {
	_, err := resolve(c, &c.metricsInit, "metrics", &c.businessMetrics, c.initMetrics)
	return err
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initMetrics creates the provider and business metrics, or a no-op recorder when disabled.
func (c *Container) initMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	c.metricsProvider = provider
	return businessMetrics, nil
}

// HTTPServer returns the API server with its router configured.
// ctx bounds the rate limiter cleanup goroutines and should live as long as the server.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	return resolve(c, &c.httpServerInit, "httpServer", &c.httpServer, func() (*http.Server, error) {
		return c.initHTTPServer(ctx)
	})
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return resolve(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return nil, nil
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	authUC, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for http server: %w", err)
	}
	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}
	journalUC, err := c.JournalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get journal use case for http server: %w", err)
	}
	activityUC, err := c.ActivityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity use case for http server: %w", err)
	}
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	logger := c.Logger()
	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(ctx, c.config, http.Handlers{
		Auth:     authHTTP.NewAuthHandler(authUC, logger),
		User:     userHTTP.NewUserHandler(userUC, logger),
		Journal:  journalHTTP.NewJournalHandler(journalUC, logger),
		Activity: activityHTTP.NewActivityHandler(activityUC, logger),
	}, authUC, c.TokenService(), provider)

	return server, nil
}

// UserRepository returns the user repository shared by auth, settings and export.
func (c *Container) UserRepository() (userStore, error) {
	return resolve(c, &c.userRepoInit, "userRepo", &c.userRepo, func() (userStore, error) {
		return repositoryFor(c, "user repository",
			func(db *sql.DB) userStore { return userRepository.NewPostgreSQLUserRepository(db) },
			func(db *sql.DB) userStore { return userRepository.NewMySQLUserRepository(db) },
		)
	})
}
