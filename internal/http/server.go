// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	activityHTTP "github.com/dheeverse/dheeverse/internal/activity/http"
	authHTTP "github.com/dheeverse/dheeverse/internal/auth/http"
	authService "github.com/dheeverse/dheeverse/internal/auth/service"
	authUseCase "github.com/dheeverse/dheeverse/internal/auth/usecase"
	"github.com/dheeverse/dheeverse/internal/config"
	journalHTTP "github.com/dheeverse/dheeverse/internal/journal/http"
	"github.com/dheeverse/dheeverse/internal/metrics"
	userHTTP "github.com/dheeverse/dheeverse/internal/user/http"
)

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the feature handlers mounted by SetupRouter.
type Handlers struct {
	Auth     *authHTTP.AuthHandler
	User     *userHTTP.UserHandler
	Journal  *journalHTTP.JournalHandler
	Activity *activityHTTP.ActivityHandler
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// serve blocks until srv stops. A graceful Shutdown is not an error.
func serve(srv *http.Server, name string, logger *slog.Logger) error {
	logger.Info("starting "+name+" server", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s server: %w", name, err)
	}
	return nil
}

// SetupRouter builds the gin engine with middleware and every API route.
//
// ctx bounds the lifetime of the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	authUseCase authUseCase.AuthUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	authenticated := []gin.HandlerFunc{authHTTP.AuthenticationMiddleware(authUseCase, tokenService, s.logger)}
	if cfg.RateLimitEnabled {
		authenticated = append(authenticated,
			authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	auth := v1.Group("/auth")
	if cfg.RateLimitAuthEnabled {
		auth.Use(authHTTP.IPRateLimitMiddleware(ctx, cfg.RateLimitAuthRequestsPerSec, cfg.RateLimitAuthBurst, s.logger))
	}
	{
		auth.POST("/signup", handlers.Auth.SignUpHandler)
		auth.POST("/verify", handlers.Auth.VerifyEmailHandler)
		auth.POST("/otp", handlers.Auth.ResendOTPHandler)
		auth.POST("/login", handlers.Auth.LoginHandler)
		auth.POST("/logout", append(authenticated, handlers.Auth.LogoutHandler)...)
	}

	me := v1.Group("/me", authenticated...)
	{
		me.GET("", handlers.User.GetMeHandler)
		me.PUT("/password", handlers.User.ChangePasswordHandler)
		me.POST("/email", handlers.User.RequestEmailChangeHandler)
		me.POST("/email/confirm", handlers.User.ConfirmEmailChangeHandler)
		me.PUT("/archive-pin", handlers.User.SetArchivePINHandler)
		me.GET("/export", handlers.Journal.ExportHandler)
	}

	journal := v1.Group("/journal", authenticated...)
	{
		journal.POST("/entries", handlers.Journal.CreateHandler)
		journal.GET("/entries", handlers.Journal.ListHandler)
		journal.GET("/entries/:id", handlers.Journal.GetHandler)
		journal.PUT("/entries/:id", handlers.Journal.UpdateHandler)
		journal.DELETE("/entries/:id", handlers.Journal.DeleteHandler)
		journal.POST("/entries/:id/archive", handlers.Journal.ArchiveHandler)
		journal.POST("/entries/:id/unarchive", handlers.Journal.UnarchiveHandler)
		journal.GET("/archive", handlers.Journal.ListArchivedHandler)
		journal.GET("/analytics", handlers.Journal.AnalyticsHandler)
	}

	activities := v1.Group("/activities", authenticated...)
	{
		activities.POST("", handlers.Activity.CompleteHandler)
		activities.GET("", handlers.Activity.ListHandler)
		activities.GET("/stats", handlers.Activity.StatsHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router
	return serve(s.server, "http", s.logger)
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			dbStatus = "error"
		}
	}

	if dbStatus != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": dbStatus},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": dbStatus},
	})
}
