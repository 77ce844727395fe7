// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider metrics track each news adapter.
var (
	// ProviderArticlesTotal counts normalized articles returned by each provider
	ProviderArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_articles_total",
			Help: "Total number of normalized articles returned by news providers",
		},
		[]string{"provider"},
	)

	// ProviderRecordsDroppedTotal counts raw records rejected by the normalizer
	ProviderRecordsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_records_dropped_total",
			Help: "Total number of provider records dropped during normalization",
		},
		[]string{"provider", "reason"},
	)

	// ProviderFetchDuration measures time spent in one provider call
	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_fetch_duration_seconds",
			Help:    "Time taken to fetch from a news provider",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	// ProviderErrorsTotal counts failed provider calls by error type
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_errors_total",
			Help: "Total number of failed news provider calls",
		},
		[]string{"provider", "error_type"}, // error_type: missing_credential, unavailable, circuit_open
	)
)

// Pipeline metrics track the aggregation stages.
var (
	// PipelineArticles observes the article count after each stage
	PipelineArticles = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_articles",
			Help:    "Number of articles remaining after each aggregation stage",
			Buckets: []float64{0, 10, 25, 50, 75, 100, 150, 200, 300},
		},
		[]string{"stage"}, // stage: fetched, filtered, deduplicated
	)

	// PipelineDuration measures a full aggregation run
	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "Time taken by one aggregation run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// Classifier metrics track sentiment scoring.
var (
	// SentimentLabelsTotal counts labels produced per backend
	SentimentLabelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_labels_total",
			Help: "Total number of sentiment labels produced",
		},
		[]string{"backend", "label"},
	)

	// ClassifierRequestsTotal counts remote classifier calls by status
	ClassifierRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_requests_total",
			Help: "Total number of sentiment classifier requests",
		},
		[]string{"backend", "status"},
	)

	// ClassifierDuration measures one remote classifier call
	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classifier_duration_seconds",
			Help:    "Time taken by a sentiment classifier request",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"backend"},
	)
)

// Cache metrics track the response cache.
var (
	// CacheRequestsTotal counts cache lookups by result
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_requests_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"backend", "result"}, // result: hit, miss, error
	)
)

// Mood metrics publish the latest market mood snapshot.
var (
	// MarketMoodScore is the most recent net sentiment score in [-1, 1]
	MarketMoodScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "market_mood_score",
			Help: "Most recent net sentiment score of crypto headlines",
		},
	)

	// MarketMoodArticles is the most recent label breakdown
	MarketMoodArticles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "market_mood_articles",
			Help: "Number of headlines per sentiment in the most recent snapshot",
		},
		[]string{"sentiment"},
	)
)
