package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
)

func newRateLimitedRouter(ctx context.Context, userID uuid.UUID, rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			session := &authDomain.Session{ID: uuid.New(), UserID: userID}
			c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(ctx, rps, burst, testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serve(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("AllowsBurstThenBlocks", func(t *testing.T) {
		router := newRateLimitedRouter(ctx, uuid.New(), 0.01, 3)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, serve(router, "").Code)
		}

		w := serve(router, "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("IndependentLimitsPerUser", func(t *testing.T) {
		first := newRateLimitedRouter(ctx, uuid.New(), 0.01, 1)
		assert.Equal(t, http.StatusOK, serve(first, "").Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(first, "").Code)

		second := newRateLimitedRouter(ctx, uuid.New(), 0.01, 1)
		assert.Equal(t, http.StatusOK, serve(second, "").Code)
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		router := newRateLimitedRouter(ctx, uuid.Nil, 10, 10)
		assert.Equal(t, http.StatusUnauthorized, serve(router, "").Code)
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(IPRateLimitMiddleware(ctx, 0.01, 2, testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, serve(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "10.0.0.1:1234").Code)

	assert.Equal(t, http.StatusOK, serve(router, "10.0.0.2:1234").Code)
}

func TestLimiterStore_RemoveIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newLimiterStore[string](ctx, 1, 1)
	store.get("fresh")
	store.get("stale")

	val, ok := store.limiters.Load("stale")
	assert.True(t, ok)
	entry := val.(*limiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.removeIdle(time.Now().Add(-time.Hour))

	_, ok = store.limiters.Load("stale")
	assert.False(t, ok)
	_, ok = store.limiters.Load("fresh")
	assert.True(t, ok)
}
