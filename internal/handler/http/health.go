// Package http wires the public HTTP surface of the mood service: health and
// liveness probes, request metrics, logging and panic recovery. The news
// endpoint itself lives in the cryptodata subpackage.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"crypto-mood/internal/handler/http/respond"
	"crypto-mood/internal/infra/cache"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ClassifierStatus is the part of the classifier the health check reads.
type ClassifierStatus interface {
	Backend() string
	Available() bool
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports which providers, classifier backend and cache are in use.
// The service keeps answering with fewer sources or UNKNOWN labels, so only a
// deployment with no provider at all is unhealthy; everything else is at most
// degraded.
type HealthHandler struct {
	Providers  []string
	Classifier ClassifierStatus
	Cache      cache.Cache
	Version    string
	Logger     *slog.Logger
}

// ServeHTTP reports the status of every dependency.
// @Summary      Service health
// @Description  Reports provider, classifier and cache status
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"providers":  h.checkProviders(),
		"classifier": h.checkClassifier(),
		"cache":      h.checkCache(ctx),
	}

	status := statusHealthy
	for _, c := range checks {
		switch c.Status {
		case statusUnhealthy:
			status = statusUnhealthy
		case statusDegraded:
			if status == statusHealthy {
				status = statusDegraded
			}
		}
	}

	code := http.StatusOK
	if status == statusUnhealthy {
		code = http.StatusServiceUnavailable
		if h.Logger != nil {
			h.Logger.Warn("health check failed", slog.Any("checks", checks))
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkProviders() CheckStatus {
	if len(h.Providers) == 0 {
		return CheckStatus{Status: statusUnhealthy, Message: "no news provider configured"}
	}
	return CheckStatus{
		Status:  statusHealthy,
		Details: map[string]any{"configured": h.Providers},
	}
}

func (h *HealthHandler) checkClassifier() CheckStatus {
	if h.Classifier == nil {
		return CheckStatus{Status: statusDegraded, Message: "not configured"}
	}
	details := map[string]any{"backend": h.Classifier.Backend()}
	if !h.Classifier.Available() {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "backend unavailable, headlines are labeled UNKNOWN",
			Details: details,
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

func (h *HealthHandler) checkCache(ctx context.Context) CheckStatus {
	if h.Cache == nil {
		return CheckStatus{Status: statusDegraded, Message: "not configured"}
	}
	details := map[string]any{"backend": h.Cache.Backend()}
	if p, ok := h.Cache.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return CheckStatus{
				Status:  statusDegraded,
				Message: respond.SanitizeError(err),
				Details: details,
			}
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
