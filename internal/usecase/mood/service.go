// Package mood turns aggregated news into a market mood report: it tags
// every article with a sentiment and summarizes the tags.
package mood

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/observability/tracing"
	"crypto-mood/internal/usecase/aggregate"

	"go.opentelemetry.io/otel/attribute"
)

// Aggregator produces the article list for a query.
type Aggregator interface {
	Aggregate(ctx context.Context, q aggregate.Query) []entity.Article
}

// Classifier scores headlines in order.
type Classifier interface {
	ClassifyBatch(ctx context.Context, texts []string) []entity.Sentiment
}

// Report is one market mood result.
type Report struct {
	Message   string
	Timestamp time.Time
	News      []entity.Article
	Summary   Summary
}

// Service builds mood reports.
type Service struct {
	aggregator Aggregator
	classifier Classifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a Service.
func NewService(aggregator Aggregator, classifier Classifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{aggregator: aggregator, classifier: classifier, logger: logger, now: time.Now}
}

// Report aggregates the news for q, tags each headline and summarizes the
// result. It never fails: degraded providers or classifier show up as fewer
// articles or UNKNOWN labels.
func (s *Service) Report(ctx context.Context, q aggregate.Query) Report {
	ctx, span := tracing.StartSpan(ctx, "mood.report")
	defer span.End()

	articles := s.aggregator.Aggregate(ctx, q)

	titles := make([]string, len(articles))
	for i, a := range articles {
		titles[i] = a.Title
	}
	labels := s.classifier.ClassifyBatch(ctx, titles)

	tagged := make([]entity.Article, len(articles))
	for i, a := range articles {
		tagged[i] = a.WithSentiment(labels[i])
	}

	summary := Summarize(tagged)
	span.SetAttributes(
		attribute.Int("articles", len(tagged)),
		attribute.String("overall_sentiment", summary.Overall.String()))

	logging.WithRequestID(ctx, s.logger).Info("mood report built",
		slog.Int("articles", len(tagged)),
		slog.String("overall_sentiment", summary.Overall.String()),
		slog.String("trend", string(summary.Trend)))

	return Report{
		Message:   fmt.Sprintf("Processed %d unique articles.", len(tagged)),
		Timestamp: s.now().UTC(),
		News:      tagged,
		Summary:   summary,
	}
}
