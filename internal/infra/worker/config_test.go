package worker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "*/30 * * * *", cfg.CronSchedule)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestWorkerConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := WorkerConfig{
		CronSchedule: "not a schedule",
		Timezone:     "Nowhere/City",
		JobTimeout:   time.Second,
		HealthPort:   80,
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"cron schedule", "timezone", "job timeout", "health port"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("valid overrides", func(t *testing.T) {
		t.Setenv("MOOD_CRON_SCHEDULE", "@every 10m")
		t.Setenv("WORKER_TIMEZONE", "Europe/London")
		t.Setenv("MOOD_JOB_TIMEOUT", "90s")
		t.Setenv("WORKER_HEALTH_PORT", "9200")
		m := NewWorkerMetricsWith(prometheus.NewRegistry())

		cfg := LoadConfigFromEnv(discardLogger(), m)

		assert.Equal(t, "@every 10m", cfg.CronSchedule)
		assert.Equal(t, "Europe/London", cfg.Timezone)
		assert.Equal(t, 90*time.Second, cfg.JobTimeout)
		assert.Equal(t, 9200, cfg.HealthPort)
		assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("MOOD_CRON_SCHEDULE", "61 * * * *")
		t.Setenv("WORKER_TIMEZONE", "")
		t.Setenv("MOOD_JOB_TIMEOUT", "2h")
		t.Setenv("WORKER_HEALTH_PORT", "abc")
		m := NewWorkerMetricsWith(prometheus.NewRegistry())

		cfg := LoadConfigFromEnv(discardLogger(), m)

		assert.Equal(t, DefaultConfig(), *cfg)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("cron_schedule")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("job_timeout")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("health_port")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone")))
	})
}
