// Package aggregate merges crypto news from several providers into one
// deterministic, date-filtered, deduplicated and newest-first article list.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/observability/metrics"
	"crypto-mood/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DateLayout is the layout of the from/to query bounds.
const DateLayout = "2006-01-02"

// Criteria is what a provider receives. Dates are already validated
// DateLayout strings; an empty string means the bound is absent.
type Criteria struct {
	HoursAgo *int
	FromDate string
	ToDate   string
}

// Provider fetches normalized articles from one external news source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, c Criteria) ([]entity.Article, error)
}

// Query is a raw aggregation request. From and To are unvalidated DateLayout
// strings taken from the caller.
type Query struct {
	HoursAgo *int
	From     string
	To       string
}

// Service runs providers and combines their results.
type Service struct {
	providers []Provider
	logger    *slog.Logger
}

// NewService creates a Service. Providers are merged in the order given,
// which is the priority used when two records share a URL.
func NewService(logger *slog.Logger, providers ...Provider) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{providers: providers, logger: logger}
}

// Providers returns the provider names in priority order.
func (s *Service) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Aggregate fetches from every provider concurrently and returns the merged
// list. Provider failures degrade to an empty contribution, so Aggregate never
// fails; it may return an empty list.
func (s *Service) Aggregate(ctx context.Context, q Query) []entity.Article {
	start := time.Now()
	logger := logging.WithRequestID(ctx, s.logger)
	ctx, span := tracing.StartSpan(ctx, "aggregate.run",
		attribute.String("query.from", q.From),
		attribute.String("query.to", q.To))
	defer span.End()

	window := s.parseWindow(q)
	criteria := Criteria{HoursAgo: q.HoursAgo}
	if window.from != nil {
		criteria.FromDate = q.From
	}
	if window.to != nil {
		criteria.ToDate = q.To
	}

	combined := s.fetchAll(ctx, logger, criteria)
	metrics.RecordPipelineStage("fetched", len(combined))

	filtered := window.apply(combined)
	metrics.RecordPipelineStage("filtered", len(filtered))

	unique := Deduplicate(filtered, func(a entity.Article, err error) {
		logger.Warn("dropping article with invalid url",
			slog.String("url", a.URL),
			slog.String("title", a.Title),
			slog.Any("error", err))
	})
	metrics.RecordPipelineStage("unique", len(unique))

	SortNewestFirst(unique)

	span.SetAttributes(attribute.Int("articles", len(unique)))
	metrics.RecordPipelineDuration(time.Since(start))
	logger.Info("aggregation completed",
		slog.Int("fetched", len(combined)),
		slog.Int("filtered", len(filtered)),
		slog.Int("unique", len(unique)),
		slog.Duration("duration", time.Since(start)))
	return unique
}

// fetchAll runs every provider in its own goroutine. Each goroutine writes
// only its own slot, and slots are concatenated in provider order.
func (s *Service) fetchAll(ctx context.Context, logger *slog.Logger, c Criteria) []entity.Article {
	slots := make([][]entity.Article, len(s.providers))

	var eg errgroup.Group
	for i, p := range s.providers {
		eg.Go(func() error {
			articles, err := p.Fetch(ctx, c)
			if err != nil {
				logProviderError(logger, p.Name(), err)
				return nil
			}
			slots[i] = articles
			return nil
		})
	}
	_ = eg.Wait()

	total := 0
	for _, slot := range slots {
		total += len(slot)
	}
	combined := make([]entity.Article, 0, total)
	for _, slot := range slots {
		combined = append(combined, slot...)
	}
	return combined
}

func logProviderError(logger *slog.Logger, name string, err error) {
	if errors.Is(err, ErrMissingCredential) {
		logger.Warn("provider skipped: credential not configured",
			slog.String("provider", name))
		return
	}
	logger.Warn("provider failed, continuing without it",
		slog.String("provider", name),
		slog.Any("error", err))
}
