package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	// X-Archive-PIN carries the archive PIN on unarchive and archive listing.
	corsRequestHeaders = []string{"Authorization", "Content-Type", "X-Archive-PIN"}
	// Content-Disposition names the export download.
	corsExposedHeaders = []string{"X-Request-Id", "Retry-After", "Content-Disposition"}
)

// createCORSMiddleware allows the configured web client origins, or returns nil when
// CORS is off or CORS_ALLOW_ORIGINS yields no usable origin.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but CORS_ALLOW_ORIGINS has no usable origin, CORS not applied")
		return nil
	}
	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     corsMethods,
		AllowHeaders:     corsRequestHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// parseOrigins splits the comma separated list, dropping blanks, duplicates and
// entries without an http(s) scheme, which cors.New would otherwise panic on.
// A trailing slash is removed since browsers never send one in Origin.
func parseOrigins(raw string) []string {
	var origins []string
	for part := range strings.SplitSeq(raw, ",") {
		origin := strings.TrimSuffix(strings.TrimSpace(part), "/")
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			continue
		}
		if !slices.Contains(origins, origin) {
			origins = append(origins, origin)
		}
	}
	return origins
}
