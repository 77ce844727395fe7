// Package middleware contains the HTTP middleware specific to the public API:
// CORS for browser clients and the response cache.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// OriginValidator decides whether a browser origin may read API responses.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	Validator      OriginValidator
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
	Logger *slog.Logger
}

// DefaultCORSConfig returns a read-only API configuration for the given origins.
func DefaultCORSConfig(origins []string, logger *slog.Logger) CORSConfig {
	return CORSConfig{
		Validator:      NewWhitelistValidator(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
		Logger:         logger,
	}
}

// CORS sets Access-Control-* headers for allowed origins and answers
// preflight requests with 204. Requests from other origins are served
// without CORS headers so the browser blocks them.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Origin")

			if !cfg.Validator.IsAllowed(origin) {
				logger.Warn("cors origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
