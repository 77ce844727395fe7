package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"crypto-mood/internal/config"
	"crypto-mood/internal/infra/classifier"
	"crypto-mood/internal/infra/provider"
	workerPkg "crypto-mood/internal/infra/worker"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/usecase/aggregate"
	"crypto-mood/internal/usecase/mood"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Worker settings fail open: invalid values fall back to defaults.
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	job := workerPkg.NewSnapshotJob(setupMoodService(logger, cfg), workerMetrics, logger, workerConfig.JobTimeout)
	startCronWorker(ctx, logger, job, workerConfig, healthServer)
}

// setupMoodService wires providers, aggregation and the classifier.
func setupMoodService(logger *slog.Logger, cfg *config.Config) *mood.Service {
	providers := provider.FromConfig(cfg.Providers, logger)
	aggregator := aggregate.NewService(logger, providers...)
	cls := classifier.FromConfig(cfg.Classifier, logger)
	return mood.NewService(aggregator, cls, logger)
}

// startCronWorker takes one snapshot immediately, then runs the schedule until
// ctx is cancelled.
func startCronWorker(ctx context.Context, logger *slog.Logger, job *workerPkg.SnapshotJob, cfg *workerPkg.WorkerConfig, health *workerPkg.HealthServer) {
	c, err := workerPkg.Schedule(ctx, cfg, job)
	if err != nil {
		logger.Error("failed to schedule mood snapshot", slog.Any("error", err))
		os.Exit(1)
	}

	if _, err := job.Run(ctx); err != nil {
		logger.Warn("initial mood snapshot failed", slog.Any("error", err))
	}

	c.Start()
	health.SetReady(true)
	logger.Info("cron worker started", slog.String("schedule", cfg.CronSchedule))

	<-ctx.Done()
	health.SetReady(false)
	logger.Info("shutting down worker...")
	<-c.Stop().Done()
	logger.Info("worker stopped")
}
