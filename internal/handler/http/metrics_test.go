package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/api/crypto-data":    "/api/crypto-data",
		"/health":             "/health",
		"/live":               "/live",
		"/metrics":            "/metrics",
		"/swagger/index.html": "/swagger/",
		"/wp-login.php":       "other",
		"/api/crypto-data/":   "other",
	}
	for path, want := range tests {
		assert.Equal(t, want, routeLabel(path), path)
	}
}

func TestMetricsMiddleware_CountsByStatus(t *testing.T) {
	httpRequestsTotal.Reset()

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	for range 3 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/crypto-data?from=2024-05-01", nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/crypto-data", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/.env", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/crypto-data", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/crypto-data", "405")))
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "other", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsHandler(t *testing.T) {
	h := MetricsMiddleware(http.NotFoundHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}
