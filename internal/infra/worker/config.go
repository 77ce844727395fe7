package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crypto-mood/internal/pkg/config"
)

// WorkerConfig holds the configuration for the mood snapshot worker.
//
// Environment variables:
//   - MOOD_CRON_SCHEDULE: cron expression or descriptor (default "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone for the schedule (default "UTC")
//   - MOOD_JOB_TIMEOUT: upper bound for one snapshot run (default 2m, range 10s-30m)
//   - WORKER_HEALTH_PORT: health and metrics port (default 9091, range 1024-65535)
type WorkerConfig struct {
	CronSchedule string
	Timezone     string
	JobTimeout   time.Duration
	HealthPort   int
}

const (
	minJobTimeout = 10 * time.Second
	maxJobTimeout = 30 * time.Minute
)

// DefaultConfig returns the worker defaults.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/30 * * * *",
		Timezone:     "UTC",
		JobTimeout:   2 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks every field and reports all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateJobTimeout(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := validatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Location returns the configured timezone, or UTC when it cannot be loaded.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv loads the worker configuration with fail-open semantics:
// every invalid value is replaced by its default, logged as a warning and
// counted in metrics. The returned configuration is always valid.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	fallback := false

	note := func(field string, applied bool, warning string) {
		if !applied {
			return
		}
		fallback = true
		metrics.RecordFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	schedule := config.LoadEnvString("MOOD_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	note("cron_schedule", schedule.FallbackApplied, schedule.Warning)

	tz := config.LoadEnvString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	note("timezone", tz.FallbackApplied, tz.Warning)

	timeout := config.LoadEnvDuration("MOOD_JOB_TIMEOUT", cfg.JobTimeout, validateJobTimeout)
	cfg.JobTimeout = timeout.Value
	note("job_timeout", timeout.FallbackApplied, timeout.Warning)

	port := config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, validatePort)
	cfg.HealthPort = port.Value
	note("health_port", port.FallbackApplied, port.Warning)

	metrics.SetFallbackActive(fallback)
	metrics.RecordLoadTimestamp()
	return &cfg
}

func validateJobTimeout(d time.Duration) error {
	if d < minJobTimeout || d > maxJobTimeout {
		return fmt.Errorf("duration %v outside range [%v, %v]", d, minJobTimeout, maxJobTimeout)
	}
	return nil
}

func validatePort(p int) error {
	return config.ValidateIntRange(p, 1024, 65535)
}
