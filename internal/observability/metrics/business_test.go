package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProviderFetch(t *testing.T) {
	before := testutil.ToFloat64(ProviderArticlesTotal.WithLabelValues("test-provider"))

	RecordProviderFetch("test-provider", 120*time.Millisecond, 7)

	after := testutil.ToFloat64(ProviderArticlesTotal.WithLabelValues("test-provider"))
	assert.Equal(t, 7.0, after-before)
}

func TestRecordProviderError(t *testing.T) {
	tests := []struct {
		name      string
		errorType string
	}{
		{name: "missing credential", errorType: "missing_credential"},
		{name: "unavailable", errorType: "unavailable"},
		{name: "circuit open", errorType: "circuit_open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := ProviderErrorsTotal.WithLabelValues("errors-provider", tt.errorType)
			before := testutil.ToFloat64(counter)

			RecordProviderError("errors-provider", tt.errorType)

			assert.Equal(t, 1.0, testutil.ToFloat64(counter)-before)
		})
	}
}

func TestRecordRecordDropped(t *testing.T) {
	counter := ProviderRecordsDroppedTotal.WithLabelValues("drop-provider", "published_at")
	before := testutil.ToFloat64(counter)

	RecordRecordDropped("drop-provider", "published_at")
	RecordRecordDropped("drop-provider", "published_at")

	assert.Equal(t, 2.0, testutil.ToFloat64(counter)-before)
}

func TestRecordPipeline(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordPipelineStage("fetched", 120)
		RecordPipelineStage("deduplicated", 80)
		RecordPipelineDuration(2 * time.Second)
	})
}

func TestRecordClassifierRequest(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		status  string
	}{
		{name: "success", success: true, status: "success"},
		{name: "failure", success: false, status: "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := ClassifierRequestsTotal.WithLabelValues("test-backend", tt.status)
			before := testutil.ToFloat64(counter)

			RecordClassifierRequest("test-backend", tt.success, 300*time.Millisecond)

			assert.Equal(t, 1.0, testutil.ToFloat64(counter)-before)
		})
	}
}

func TestRecordSentimentLabel(t *testing.T) {
	counter := SentimentLabelsTotal.WithLabelValues("label-backend", "POSITIVE")
	before := testutil.ToFloat64(counter)

	RecordSentimentLabel("label-backend", "POSITIVE")

	assert.Equal(t, 1.0, testutil.ToFloat64(counter)-before)
}

func TestRecordCacheLookup(t *testing.T) {
	hit := CacheRequestsTotal.WithLabelValues("memory", "hit")
	before := testutil.ToFloat64(hit)

	RecordCacheLookup("memory", "hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(hit)-before)
}

func TestUpdateMarketMood(t *testing.T) {
	UpdateMarketMood(0.5, 3, 1, 0)

	assert.Equal(t, 0.5, testutil.ToFloat64(MarketMoodScore))
	assert.Equal(t, 3.0, testutil.ToFloat64(MarketMoodArticles.WithLabelValues("POSITIVE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(MarketMoodArticles.WithLabelValues("NEGATIVE")))
	assert.Equal(t, 0.0, testutil.ToFloat64(MarketMoodArticles.WithLabelValues("NEUTRAL")))
}

func TestMarketMoodExposition(t *testing.T) {
	UpdateMarketMood(-0.25, 1, 3, 4)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var articles *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "market_mood_articles" {
			articles = mf
		}
	}
	require.NotNil(t, articles, "market_mood_articles is registered")
	assert.Equal(t, dto.MetricType_GAUGE, articles.GetType())

	got := map[string]float64{}
	for _, m := range articles.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "sentiment" {
				got[lp.GetValue()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, map[string]float64{"POSITIVE": 1, "NEGATIVE": 3, "NEUTRAL": 4}, got)
}
