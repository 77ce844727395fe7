package provider_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/infra/provider"
	"crypto-mood/internal/resilience/retry"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testOptions(baseURL string) provider.Options {
	return provider.Options{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry:   &retry.Config{MaxAttempts: 2, Delay: time.Millisecond, MaxSuggestedDelay: 10 * time.Millisecond},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     func() time.Time { return fixedNow },
	}
}

// countingServer serves handler and counts requests.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func ptr[T any](v T) *T { return &v }

func articleURLs(articles []entity.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.URL
	}
	return out
}
