package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"crypto-mood/internal/handler/http/responsewriter"
	"crypto-mood/internal/infra/cache"
	"crypto-mood/internal/observability/metrics"

	"golang.org/x/sync/singleflight"
)

// CacheHeader reports whether a response came from the cache.
const CacheHeader = "X-Cache"

// Cache serves GET responses from store, keyed by path and raw query string.
// Only 200 responses are stored. Concurrent misses for one key run the
// handler once; the other callers receive the same response.
// The leader runs detached from its caller's cancellation, so a client that
// disconnects neither aborts the shared fetch nor stores a partial result.
// Cache errors are logged and the request is served uncached.
func Cache(store cache.Cache, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	var group singleflight.Group

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			key := r.URL.Path + "?" + r.URL.RawQuery

			entry, ok, err := store.Get(ctx, key)
			switch {
			case err != nil:
				metrics.RecordCacheLookup(store.Backend(), "error")
				logger.Warn("cache lookup failed",
					slog.String("key", key),
					slog.String("error", err.Error()))
			case ok:
				metrics.RecordCacheLookup(store.Backend(), "hit")
				writeEntry(w, entry, "HIT")
				return
			default:
				metrics.RecordCacheLookup(store.Backend(), "miss")
			}

			served := false
			v, _, _ := group.Do(key, func() (any, error) {
				served = true
				leaderCtx := context.WithoutCancel(ctx)
				rw := responsewriter.WrapCapturing(w)
				rw.Header().Set(CacheHeader, "MISS")
				next.ServeHTTP(rw, r.WithContext(leaderCtx))

				e := cache.Entry{
					Status:      rw.StatusCode(),
					ContentType: rw.Header().Get("Content-Type"),
					Body:        bytes.Clone(rw.Body()),
				}
				if e.Status == http.StatusOK {
					if err := store.Set(leaderCtx, key, e); err != nil {
						logger.Warn("cache store failed",
							slog.String("key", key),
							slog.String("error", err.Error()))
					}
				}
				return e, nil
			})
			if served {
				return
			}
			writeEntry(w, v.(cache.Entry), "MISS")
		})
	}
}

func writeEntry(w http.ResponseWriter, e cache.Entry, state string) {
	if e.ContentType != "" {
		w.Header().Set("Content-Type", e.ContentType)
	}
	w.Header().Set(CacheHeader, state)
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}
