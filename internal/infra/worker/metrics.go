package worker

import (
	"time"

	"crypto-mood/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics tracks snapshot job execution alongside the embedded
// worker_config_* metrics.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// JobRunsTotal counts snapshot runs by status (success, failure).
	JobRunsTotal *prometheus.CounterVec

	// JobDurationSeconds observes the wall time of each snapshot run.
	JobDurationSeconds prometheus.Histogram

	// ArticlesProcessedTotal accumulates the articles scored across runs.
	ArticlesProcessedTotal prometheus.Counter

	// LastSuccessTimestamp is the Unix time of the last successful run.
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with the default registerer.
func NewWorkerMetrics() *WorkerMetrics {
	return NewWorkerMetricsWith(prometheus.DefaultRegisterer)
}

// NewWorkerMetricsWith registers the worker metrics with reg.
func NewWorkerMetricsWith(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetricsWith("worker", reg),

		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_mood_job_runs_total",
			Help: "Total number of mood snapshot runs by status",
		}, []string{"status"}),

		JobDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_mood_job_duration_seconds",
			Help:    "Duration of mood snapshot runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),

		ArticlesProcessedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "worker_mood_job_articles_total",
			Help: "Total number of articles scored across snapshot runs",
		}),

		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_mood_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot run",
		}),
	}
}

// RecordJob records the outcome of one snapshot run.
func (m *WorkerMetrics) RecordJob(success bool, duration time.Duration, articles int) {
	m.JobDurationSeconds.Observe(duration.Seconds())
	if !success {
		m.JobRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.JobRunsTotal.WithLabelValues("success").Inc()
	m.ArticlesProcessedTotal.Add(float64(articles))
	m.LastSuccessTimestamp.SetToCurrentTime()
}
