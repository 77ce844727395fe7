// Package classifier scores headline sentiment through a pluggable backend.
//
// A Classifier is built once at startup and injected where needed. It owns
// the batch contract: empty texts are NEUTRAL without a remote call, a
// missing or failing backend yields UNKNOWN, and results keep input order.
// Backends only return their raw labels; MapLabel turns them into the four
// canonical sentiments.
package classifier

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/observability/metrics"
	"crypto-mood/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Scorer is a sentiment backend. Score returns one raw label per text in
// input order; an empty label marks an item the backend could not score.
type Scorer interface {
	Name() string
	Score(ctx context.Context, texts []string) ([]string, error)
}

// Classifier applies the batch contract on top of a Scorer.
type Classifier struct {
	scorer  Scorer
	backend string
	timeout time.Duration
	logger  *slog.Logger
}

// New wraps scorer. A zero timeout means no extra deadline.
func New(scorer Scorer, timeout time.Duration, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{scorer: scorer, backend: scorer.Name(), timeout: timeout, logger: logger}
}

// Unavailable returns a Classifier for a backend that could not be set up.
// It labels every non-empty text UNKNOWN.
func Unavailable(backend string, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{backend: backend, logger: logger}
}

// Backend returns the backend name.
func (c *Classifier) Backend() string { return c.backend }

// Available reports whether a backend is configured.
func (c *Classifier) Available() bool { return c.scorer != nil }

// Classify scores a single text.
func (c *Classifier) Classify(ctx context.Context, text string) entity.Sentiment {
	return c.ClassifyBatch(ctx, []string{text})[0]
}

// ClassifyBatch scores texts and returns one sentiment per text, in order.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string) []entity.Sentiment {
	out := make([]entity.Sentiment, len(texts))

	var (
		pending []string
		index   []int
	)
	for i, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			out[i] = entity.SentimentNeutral
			continue
		}
		pending = append(pending, t)
		index = append(index, i)
	}
	if len(pending) == 0 {
		return out
	}

	for _, i := range index {
		out[i] = entity.SentimentUnknown
	}
	logger := logging.WithRequestID(ctx, c.logger)
	if c.scorer == nil {
		logger.Debug("sentiment backend unavailable, labelling batch UNKNOWN",
			slog.String("backend", c.backend),
			slog.Int("texts", len(pending)))
		return out
	}

	ctx, span := tracing.StartSpan(ctx, "classifier.batch",
		attribute.String("backend", c.backend),
		attribute.Int("texts", len(pending)))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	labels, err := c.scorer.Score(ctx, pending)
	if err != nil {
		tracing.RecordError(span, err)
		logger.Warn("sentiment batch failed, labelling batch UNKNOWN",
			slog.String("backend", c.backend),
			slog.Int("texts", len(pending)),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return out
	}

	for j, i := range index {
		if j < len(labels) {
			out[i] = MapLabel(labels[j])
		}
		metrics.RecordSentimentLabel(c.backend, out[i].String())
	}
	return out
}
