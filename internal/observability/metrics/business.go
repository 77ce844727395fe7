package metrics

import (
	"time"
)

// RecordProviderFetch records a successful provider call and the number of articles it returned.
func RecordProviderFetch(provider string, duration time.Duration, count int) {
	ProviderFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	ProviderArticlesTotal.WithLabelValues(provider).Add(float64(count))
}

// RecordProviderError records a failed provider call.
// errorType should be one of "missing_credential", "unavailable" or "circuit_open".
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// RecordRecordDropped records a raw provider record rejected by the normalizer.
func RecordRecordDropped(provider, reason string) {
	ProviderRecordsDroppedTotal.WithLabelValues(provider, reason).Inc()
}

// RecordPipelineStage records how many articles survived an aggregation stage.
func RecordPipelineStage(stage string, count int) {
	PipelineArticles.WithLabelValues(stage).Observe(float64(count))
}

// RecordPipelineDuration records the duration of one aggregation run.
func RecordPipelineDuration(duration time.Duration) {
	PipelineDuration.Observe(duration.Seconds())
}

// RecordSentimentLabel records one label produced by a classifier backend.
func RecordSentimentLabel(backend, label string) {
	SentimentLabelsTotal.WithLabelValues(backend, label).Inc()
}

// RecordClassifierRequest records the result of a remote classifier call.
func RecordClassifierRequest(backend string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	ClassifierRequestsTotal.WithLabelValues(backend, status).Inc()
	ClassifierDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordCacheLookup records a response cache lookup.
// result should be "hit", "miss" or "error".
func RecordCacheLookup(backend, result string) {
	CacheRequestsTotal.WithLabelValues(backend, result).Inc()
}

// UpdateMarketMood publishes a mood snapshot.
func UpdateMarketMood(score float64, positive, negative, neutral int) {
	MarketMoodScore.Set(score)
	MarketMoodArticles.WithLabelValues("POSITIVE").Set(float64(positive))
	MarketMoodArticles.WithLabelValues("NEGATIVE").Set(float64(negative))
	MarketMoodArticles.WithLabelValues("NEUTRAL").Set(float64(neutral))
}
