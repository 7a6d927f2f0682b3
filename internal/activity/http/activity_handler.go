// Package http provides HTTP handlers for the /v1/activities routes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dheeverse/dheeverse/internal/activity/http/dto"
	"github.com/dheeverse/dheeverse/internal/activity/usecase"
	authHTTP "github.com/dheeverse/dheeverse/internal/auth/http"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/httputil"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

// ActivityHandler handles wellness activity requests.
type ActivityHandler struct {
	activityUseCase usecase.UseCase
	logger          *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUseCase usecase.UseCase, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUseCase: activityUseCase,
		logger:          logger,
	}
}

// CompleteHandler records a finished activity.
// POST /v1/activities - Returns 201 Created.
func (h *ActivityHandler) CompleteHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CompleteActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	completion, err := h.activityUseCase.Complete(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompletionResponse(completion))
}

// ListHandler returns the user's completions, newest first.
// GET /v1/activities?offset=0&limit=50
func (h *ActivityHandler) ListHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	completions, err := h.activityUseCase.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ListCompletionsResponse{Data: dto.ToCompletionResponses(completions)})
}

// StatsHandler returns per-type counts, total minutes and the streak.
// GET /v1/activities/stats
func (h *ActivityHandler) StatsHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	stats, err := h.activityUseCase.Stats(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}
