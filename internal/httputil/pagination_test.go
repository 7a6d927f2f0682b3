package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheeverse/dheeverse/internal/httputil"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const (
		offsetErr = "invalid offset parameter: must be a non-negative integer"
		limitErr  = "invalid limit parameter: must be between 1 and 100"
	)

	tests := []struct {
		url    string
		offset int
		limit  int
		errMsg string
	}{
		{url: "/", offset: 0, limit: httputil.DefaultLimit},
		{url: "/?offset=10&limit=20", offset: 10, limit: 20},
		{url: "/?limit=100", limit: 100},
		{url: "/?offset=-1", errMsg: offsetErr},
		{url: "/?offset=abc", errMsg: offsetErr},
		{url: "/?offset=", errMsg: offsetErr},
		{url: "/?limit=0", errMsg: limitErr},
		{url: "/?limit=101", errMsg: limitErr},
		{url: "/?limit=xyz", errMsg: limitErr},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)

			offset, limit, err := httputil.ParsePagination(c)

			if tt.errMsg != "" {
				require.EqualError(t, err, tt.errMsg)
				assert.Zero(t, offset)
				assert.Zero(t, limit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}
