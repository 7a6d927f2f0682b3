package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/dheeverse/dheeverse/internal/auth/service"
	authUseCase "github.com/dheeverse/dheeverse/internal/auth/usecase"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The token is hashed with tokenService.HashToken and resolved through
// AuthUseCase.Authenticate. On success the session is stored in the request
// context and can be read with GetSession or GetUserID.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
// Missing, malformed, unknown, expired or revoked tokens answer 401.
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		session, err := authUseCase.Authenticate(c.Request.Context(), tokenService.HashToken(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))

		logger.Debug("authentication successful",
			slog.String("user_id", session.UserID.String()),
			slog.String("session_id", session.ID.String()))

		c.Next()
	}
}

// bearerToken extracts the token from a "Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
