package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/observability/metrics"
	"crypto-mood/internal/resilience/circuitbreaker"
	"crypto-mood/internal/resilience/retry"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options tune a remote backend. Zero values select the defaults.
type Options struct {
	RequestsPerSecond float64
	Burst             int
	Concurrency       int
	BatchSize         int
	Retry             *retry.Config
	Logger            *slog.Logger
}

// remote splits a batch into chunks and sends them with bounded concurrency.
// Every chunk waits for the rate limiter and runs through the circuit
// breaker with the warm-up retry. A failed chunk leaves its labels empty;
// Score fails only when every chunk fails.
type remote struct {
	name        string
	limiter     *rate.Limiter
	breaker     *circuitbreaker.CircuitBreaker
	retry       retry.Config
	concurrency int
	batchSize   int
	logger      *slog.Logger
}

func newRemote(name string, opts Options) remote {
	r := remote{
		name:        name,
		limiter:     rate.NewLimiter(rate.Inf, 1),
		breaker:     circuitbreaker.New(circuitbreaker.ClassifierConfig(name)),
		retry:       retry.ClassifierConfig(),
		concurrency: opts.Concurrency,
		batchSize:   opts.BatchSize,
		logger:      opts.Logger,
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	if opts.Retry != nil {
		r.retry = *opts.Retry
	}
	if r.concurrency < 1 {
		r.concurrency = 4
	}
	if r.batchSize < 1 {
		r.batchSize = 16
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Name returns the backend name.
func (r *remote) Name() string { return r.name }

func (r *remote) scoreChunks(ctx context.Context, texts []string, send func(context.Context, []string) ([]string, error)) ([]string, error) {
	labels := make([]string, len(texts))
	logger := logging.WithRequestID(ctx, r.logger)

	var (
		mu       sync.Mutex
		failures []error
		chunks   int
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.concurrency)
	for start := 0; start < len(texts); start += r.batchSize {
		end := min(start+r.batchSize, len(texts))
		chunks++
		eg.Go(func() error {
			got, err := r.call(egCtx, texts[start:end], send)
			if err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				logger.Warn("sentiment chunk failed",
					slog.String("backend", r.name),
					slog.Int("offset", start),
					slog.Int("size", end-start),
					slog.Any("error", err))
				return nil
			}
			copy(labels[start:end], got)
			return nil
		})
	}
	_ = eg.Wait()

	if len(failures) == chunks {
		return nil, errors.Join(failures...)
	}
	return labels, nil
}

func (r *remote) call(ctx context.Context, chunk []string, send func(context.Context, []string) ([]string, error)) ([]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var labels []string
	err := retry.WithBackoff(ctx, r.retry, func() error {
		start := time.Now()
		got, err := circuitbreaker.Run(r.breaker, func() ([]string, error) {
			return send(ctx, chunk)
		})
		if !circuitbreaker.IsRejected(err) {
			metrics.RecordClassifierRequest(r.name, err == nil, time.Since(start))
		}
		if err != nil {
			return err
		}
		labels = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}
