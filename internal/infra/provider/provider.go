// Package provider implements the news source adapters used by the
// aggregation pipeline. Every adapter decodes its upstream response into
// strict per-provider structs, converts the records to entity.RawArticle and
// normalizes them; records that fail normalization are logged and dropped.
// Upstream calls run through a circuit breaker with a single warm-up retry.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/observability/metrics"
	"crypto-mood/internal/observability/tracing"
	"crypto-mood/internal/resilience/circuitbreaker"
	"crypto-mood/internal/resilience/retry"
	"crypto-mood/internal/usecase/aggregate"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultHoursAgo is the lookback used when a request names no date range.
const DefaultHoursAgo = 24

const userAgent = "crypto-mood/1.0"

// Options customise an adapter. Zero values select the defaults.
type Options struct {
	HTTPClient *http.Client
	// BaseURL overrides the upstream endpoint.
	BaseURL string
	Timeout time.Duration
	Retry   *retry.Config
	Logger  *slog.Logger
	Now     func() time.Time
}

type base struct {
	name    string
	client  *http.Client
	baseURL string
	timeout time.Duration
	retry   retry.Config
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
	now     func() time.Time
}

func newBase(name, defaultURL string, defaultTimeout time.Duration, opts Options) base {
	b := base{
		name:    name,
		client:  opts.HTTPClient,
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		retry:   retry.ProviderConfig(),
		breaker: circuitbreaker.New(circuitbreaker.ProviderConfig(name)),
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if b.client == nil {
		b.client = &http.Client{}
	}
	if b.baseURL == "" {
		b.baseURL = defaultURL
	}
	if b.timeout <= 0 {
		b.timeout = defaultTimeout
	}
	if opts.Retry != nil {
		b.retry = *opts.Retry
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// Name returns the provider name used in logs and metrics.
func (b *base) Name() string { return b.name }

// run wraps one upstream call with the configuration check, timeout, tracing,
// circuit breaker, retry, normalization and metrics shared by all adapters.
func (b *base) run(ctx context.Context, configured bool, load func(context.Context) ([]entity.RawArticle, error)) ([]entity.Article, error) {
	if !configured {
		metrics.RecordProviderError(b.name, "missing_credential")
		return nil, fmt.Errorf("%s: %w", b.name, aggregate.ErrMissingCredential)
	}

	logger := logging.WithRequestID(ctx, b.logger)
	ctx, span := tracing.StartSpan(ctx, "provider.fetch", attribute.String("provider", b.name))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	var raws []entity.RawArticle
	err := retry.WithBackoff(ctx, b.retry, func() error {
		r, err := circuitbreaker.Run(b.breaker, func() ([]entity.RawArticle, error) {
			return load(ctx)
		})
		if err != nil {
			return err
		}
		raws = r
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		errType := "unavailable"
		if circuitbreaker.IsRejected(err) {
			errType = "circuit_open"
		}
		metrics.RecordProviderError(b.name, errType)
		return nil, fmt.Errorf("%s: %w: %w", b.name, aggregate.ErrProviderUnavailable, err)
	}

	articles := b.normalize(logger, raws)
	metrics.RecordProviderFetch(b.name, time.Since(start), len(articles))
	span.SetAttributes(
		attribute.Int("records", len(raws)),
		attribute.Int("articles", len(articles)))
	logger.Debug("provider fetch completed",
		slog.String("provider", b.name),
		slog.Int("records", len(raws)),
		slog.Int("articles", len(articles)))
	return articles, nil
}

func (b *base) normalize(logger *slog.Logger, raws []entity.RawArticle) []entity.Article {
	out := make([]entity.Article, 0, len(raws))
	for _, raw := range raws {
		a, err := entity.NormalizeArticle(raw)
		if err != nil {
			reason := "invalid"
			var nerr *entity.NormalizeError
			if errors.As(err, &nerr) {
				reason = nerr.Field
			}
			metrics.RecordRecordDropped(b.name, reason)
			logger.Debug("dropping provider record",
				slog.String("provider", b.name),
				slog.String("url", raw.URL),
				slog.Any("error", err))
			continue
		}
		out = append(out, a)
	}
	return out
}

// getJSON performs a GET request and decodes a 2xx JSON body into dst.
// Non-2xx responses become *retry.HTTPError so that 503 can be retried.
func (b *base) getJSON(ctx context.Context, rawURL string, header http.Header, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		// The request URL may carry the API key; keep only the cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("request %s: %w", b.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return retry.NewHTTPError(resp, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", b.name, err)
	}
	return nil
}

// lookback returns the start of the hours-ago window for c.
func (b *base) lookback(c aggregate.Criteria) time.Time {
	hours := DefaultHoursAgo
	if c.HoursAgo != nil {
		hours = *c.HoursAgo
	}
	return b.now().UTC().Add(-time.Duration(hours) * time.Hour)
}
