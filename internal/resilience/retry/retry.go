// Package retry provides the single bounded retry used for upstream services
// that answer 503 while they warm up (model loading, cold caches).
// Every other failure is returned to the caller immediately.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the total number of calls, including the first one
	MaxAttempts int

	// Delay is used when the server does not suggest a wait time
	Delay time.Duration

	// MaxSuggestedDelay caps a server-suggested wait time
	MaxSuggestedDelay time.Duration
}

// DefaultConfig returns the warm-up policy: one retry after a fixed one-second pause.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       2,
		Delay:             1 * time.Second,
		MaxSuggestedDelay: 20 * time.Second,
	}
}

// ProviderConfig returns the policy for news provider calls.
// News APIs rarely warm up, so the suggested wait is capped tightly.
func ProviderConfig() Config {
	return Config{
		MaxAttempts:       2,
		Delay:             1 * time.Second,
		MaxSuggestedDelay: 5 * time.Second,
	}
}

// ClassifierConfig returns the policy for inference API calls, where a model
// load can take several seconds.
func ClassifierConfig() Config {
	return Config{
		MaxAttempts:       2,
		Delay:             1 * time.Second,
		MaxSuggestedDelay: 15 * time.Second,
	}
}

// WithBackoff executes fn and retries it only while it fails with a warming-up error.
// It returns nil if the function succeeds, or the last error otherwise.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after warm-up retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.delayFor(lastErr)
		slog.Warn("upstream warming up, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

func (cfg Config) delayFor(err error) time.Duration {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		if cfg.MaxSuggestedDelay > 0 && httpErr.RetryAfter > cfg.MaxSuggestedDelay {
			return cfg.MaxSuggestedDelay
		}
		return httpErr.RetryAfter
	}
	return cfg.Delay
}

// IsRetryable reports whether err is the warming-up status (HTTP 503).
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusServiceUnavailable
	}
	return false
}

// HTTPError represents a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Message    string

	// RetryAfter is the server-suggested wait, zero if none was given
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHTTPError builds an HTTPError from a response, reading the Retry-After header.
func NewHTTPError(resp *http.Response, message string) *HTTPError {
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Message:    message,
		RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
	}
}

// ParseRetryAfter parses a Retry-After header given either as delta seconds or
// as an HTTP date. It returns zero for empty or unparseable values.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs * float64(time.Second))
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
