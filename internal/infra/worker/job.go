package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crypto-mood/internal/observability/metrics"
	"crypto-mood/internal/usecase/aggregate"
	"crypto-mood/internal/usecase/mood"

	"github.com/robfig/cron/v3"
)

// Reporter builds a mood report for a query window.
type Reporter interface {
	Report(ctx context.Context, q aggregate.Query) mood.Report
}

// SnapshotJob computes the market mood for the default lookback window and
// publishes it as the market_mood_* gauges. API requests for arbitrary
// windows never touch those gauges.
type SnapshotJob struct {
	reporter Reporter
	metrics  *WorkerMetrics
	logger   *slog.Logger
	timeout  time.Duration
}

// NewSnapshotJob creates a job bounded by timeout per run.
func NewSnapshotJob(reporter Reporter, m *WorkerMetrics, logger *slog.Logger, timeout time.Duration) *SnapshotJob {
	return &SnapshotJob{reporter: reporter, metrics: m, logger: logger, timeout: timeout}
}

// Run executes one snapshot. The run fails only when its deadline expires or
// the parent context is cancelled; degraded providers still yield a snapshot.
func (j *SnapshotJob) Run(ctx context.Context) (mood.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	report := j.reporter.Report(ctx, aggregate.Query{})
	elapsed := time.Since(start)

	if err := ctx.Err(); err != nil {
		j.metrics.RecordJob(false, elapsed, 0)
		j.logger.Error("mood snapshot failed",
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return report, fmt.Errorf("mood snapshot: %w", err)
	}

	s := report.Summary
	j.metrics.RecordJob(true, elapsed, len(report.News))
	metrics.UpdateMarketMood(s.Score, s.Positive, s.Negative, s.Neutral)
	j.logger.Info("mood snapshot completed",
		slog.Int("articles", len(report.News)),
		slog.String("overall_sentiment", s.Overall.String()),
		slog.String("trend", string(s.Trend)),
		slog.Float64("score", s.Score),
		slog.Duration("duration", elapsed))
	return report, nil
}

// Schedule registers the job on a cron scheduler in cfg's timezone.
// The caller starts and stops the returned scheduler.
func Schedule(ctx context.Context, cfg *WorkerConfig, job *SnapshotJob) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := c.AddFunc(cfg.CronSchedule, func() {
		_, _ = job.Run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	return c, nil
}
