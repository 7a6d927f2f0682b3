// Package http provides HTTP handlers for the /v1/journal routes and the data export.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	authHTTP "github.com/dheeverse/dheeverse/internal/auth/http"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
	"github.com/dheeverse/dheeverse/internal/httputil"
	"github.com/dheeverse/dheeverse/internal/journal/domain"
	"github.com/dheeverse/dheeverse/internal/journal/http/dto"
	"github.com/dheeverse/dheeverse/internal/journal/usecase"
	appValidation "github.com/dheeverse/dheeverse/internal/validation"
)

// ArchivePINHeader carries the archive PIN on archive reads.
const ArchivePINHeader = "X-Archive-PIN"

// defaultAnalyticsDays is the window used when from is omitted.
const defaultAnalyticsDays = 30

// JournalHandler handles journal entry, analytics and export requests.
type JournalHandler struct {
	journalUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUseCase usecase.UseCase, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{
		journalUseCase: journalUseCase,
		logger:         logger,
	}
}

func (h *JournalHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return userID, ok
}

func (h *JournalHandler) entryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid entry ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// CreateHandler creates an entry and returns it with its reflections.
// POST /v1/journal/entries - Returns 201 Created.
func (h *JournalHandler) CreateHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	entry, err := h.journalUseCase.Create(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// GetHandler returns one non-archived entry.
// GET /v1/journal/entries/:id
func (h *JournalHandler) GetHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	entry, err := h.journalUseCase.Get(c.Request.Context(), userID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// ListHandler returns non-archived entries, newest first.
// GET /v1/journal/entries?offset=0&limit=50
func (h *JournalHandler) ListHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, err := h.journalUseCase.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{Data: dto.ToEntryResponses(entries)})
}

// UpdateHandler changes an entry.
// PUT /v1/journal/entries/:id
func (h *JournalHandler) UpdateHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	entry, err := h.journalUseCase.Update(c.Request.Context(), userID, id, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// DeleteHandler removes an entry.
// DELETE /v1/journal/entries/:id - Returns 204 No Content.
func (h *JournalHandler) DeleteHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	if err := h.journalUseCase.Delete(c.Request.Context(), userID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ArchiveHandler hides an entry behind the archive PIN.
// POST /v1/journal/entries/:id/archive - Returns 204 No Content.
func (h *JournalHandler) ArchiveHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	if err := h.journalUseCase.Archive(c.Request.Context(), userID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnarchiveHandler restores an archived entry.
// POST /v1/journal/entries/:id/unarchive (X-Archive-PIN header)
func (h *JournalHandler) UnarchiveHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	entry, err := h.journalUseCase.Unarchive(c.Request.Context(), userID, id, c.GetHeader(ArchivePINHeader))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// ListArchivedHandler lists archived entries.
// GET /v1/journal/archive?offset=0&limit=50 (X-Archive-PIN header)
func (h *JournalHandler) ListArchivedHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, err := h.journalUseCase.ListArchived(
		c.Request.Context(), userID, c.GetHeader(ArchivePINHeader), offset, limit,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{Data: dto.ToEntryResponses(entries)})
}

func parseDate(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s parameter: must be a date formatted as YYYY-MM-DD", name)
	}
	return t, nil
}

// AnalyticsHandler returns mood analytics for an inclusive date range.
// GET /v1/journal/analytics?from=2026-01-01&to=2026-01-31
// Defaults to the last 30 days ending today (UTC).
func (h *JournalHandler) AnalyticsHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	to, err := parseDate(c, "to", time.Now().UTC())
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	from, err := parseDate(c, "from", to.AddDate(0, 0, -(defaultAnalyticsDays - 1)))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	analytics, err := h.journalUseCase.MoodAnalytics(c.Request.Context(), userID, from, to)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToMoodAnalyticsResponse(analytics))
}

// ExportHandler returns the user's complete data as a download, JSON by default
// or YAML with ?format=yaml.
// GET /v1/me/export
func (h *JournalHandler) ExportHandler(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "yaml" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid format parameter: must be json or yaml"), h.logger)
		return
	}

	export, err := h.journalUseCase.Export(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ToExportResponse(export)
	filename := fmt.Sprintf("dheeverse-export-%s.%s", export.ExportedAt.Format(domain.DateLayout), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "json" {
		c.JSON(http.StatusOK, response)
		return
	}

	body, err := yaml.Marshal(response)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", body)
}
