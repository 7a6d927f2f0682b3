package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
	"github.com/dheeverse/dheeverse/internal/activity/http/dto"
	"github.com/dheeverse/dheeverse/internal/activity/usecase/mocks"
	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	authHTTP "github.com/dheeverse/dheeverse/internal/auth/http"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

var testSession = &authDomain.Session{ID: uuid.Must(uuid.NewV7()), UserID: uuid.Must(uuid.NewV7())}

func setupActivityHandler() (*ActivityHandler, *mocks.MockActivityUseCase) {
	useCase := &mocks.MockActivityUseCase{}
	return NewActivityHandler(useCase, slog.New(slog.NewTextHandler(io.Discard, nil))), useCase
}

func createTestContext(method, path string, body any, anonymous bool) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if !anonymous {
		c.Request = c.Request.WithContext(authHTTP.WithSession(c.Request.Context(), testSession))
	}
	return c, w
}

func TestActivityHandler_CompleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupActivityHandler()
		note := "lighter"
		completion := &domain.Completion{
			ID:              uuid.Must(uuid.NewV7()),
			UserID:          testSession.UserID,
			Type:            domain.TypeBreathing,
			DurationSeconds: 300,
			Note:            &note,
			CompletedAt:     time.Now().UTC(),
		}
		useCase.On("Complete", mock.Anything, testSession.UserID, &domain.CompleteInput{
			Type:            domain.TypeBreathing,
			DurationSeconds: 300,
			Note:            &note,
		}).Return(completion, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/activities", dto.CompleteActivityRequest{
			Type:            "breathing",
			DurationSeconds: 300,
			Note:            &note,
		}, false)
		handler.CompleteHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.CompletionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, completion.ID, resp.ID)
		assert.Equal(t, "lighter", *resp.Note)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_MissingType", func(t *testing.T) {
		handler, useCase := setupActivityHandler()

		c, w := createTestContext(http.MethodPost, "/v1/activities", map[string]any{"duration_seconds": 60}, false)
		handler.CompleteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupActivityHandler()

		c, w := createTestContext(http.MethodPost, "/v1/activities", nil, false)
		c.Request.Body = io.NopCloser(bytes.NewBufferString("{bad"))
		handler.CompleteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UnknownTypeFromUseCase", func(t *testing.T) {
		handler, useCase := setupActivityHandler()
		useCase.On("Complete", mock.Anything, testSession.UserID, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "type: must be a valid value")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/activities", map[string]any{"type": "running"}, false)
		handler.CompleteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, _ := setupActivityHandler()

		c, w := createTestContext(http.MethodPost, "/v1/activities", map[string]any{"type": "yoga"}, true)
		handler.CompleteHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestActivityHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupActivityHandler()
		completions := []*domain.Completion{{ID: uuid.Must(uuid.NewV7()), Type: domain.TypeYoga}}
		useCase.On("List", mock.Anything, testSession.UserID, 10, 5).Return(completions, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/activities?offset=10&limit=5", nil, false)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.ListCompletionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "yoga", resp.Data[0].Type)
	})

	t.Run("Error_BadPagination", func(t *testing.T) {
		handler, _ := setupActivityHandler()

		c, w := createTestContext(http.MethodGet, "/v1/activities?limit=500", nil, false)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestActivityHandler_StatsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupActivityHandler()
		stats := domain.BuildStats([]domain.TypeTotal{{Type: domain.TypeMudra, Count: 2, Seconds: 120}}, 3)
		useCase.On("Stats", mock.Anything, testSession.UserID).Return(stats, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/activities/stats", nil, false)
		handler.StatsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.TotalCompletions)
		assert.Equal(t, 2, resp.TotalMinutes)
		assert.Equal(t, 2, resp.CountsByType["mudra"])
		assert.Equal(t, 3, resp.CurrentStreak)
	})

	t.Run("Error_UseCase", func(t *testing.T) {
		handler, useCase := setupActivityHandler()
		useCase.On("Stats", mock.Anything, testSession.UserID).Return(nil, errors.New("db down")).Once()

		c, w := createTestContext(http.MethodGet, "/v1/activities/stats", nil, false)
		handler.StatsHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
