package mood

import (
	"testing"

	"crypto-mood/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func tagged(labels ...entity.Sentiment) []entity.Article {
	out := make([]entity.Article, len(labels))
	for i, l := range labels {
		out[i] = entity.Article{Sentiment: l}
	}
	return out
}

func TestSummarize(t *testing.T) {
	pos, neg, neu, unk := entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral, entity.SentimentUnknown

	tests := []struct {
		name        string
		articles    []entity.Article
		wantOverall entity.Sentiment
		wantTrend   Trend
		wantScore   float64
	}{
		{name: "mostly positive", articles: tagged(pos, pos, pos, neg), wantOverall: pos, wantTrend: TrendBullish, wantScore: 0.5},
		{name: "balanced", articles: tagged(pos, neg, neu, neu), wantOverall: neu, wantTrend: TrendNeutral, wantScore: 0},
		{name: "mostly negative", articles: tagged(neg, neg, pos), wantOverall: neg, wantTrend: TrendBearish, wantScore: -1.0 / 3},
		{name: "empty", articles: nil, wantOverall: neu, wantTrend: TrendUnknown},
		{name: "only unknown", articles: tagged(unk, unk, ""), wantOverall: neu, wantTrend: TrendUnknown},
		{name: "unknown is not counted", articles: tagged(pos, unk, unk, unk), wantOverall: pos, wantTrend: TrendBullish, wantScore: 1},
		{name: "just above threshold", articles: tagged(pos, pos, neg, neu, neu, neu), wantOverall: pos, wantTrend: TrendBullish, wantScore: 1.0 / 6},
		{name: "at threshold is neutral", articles: tagged(append(repeat(pos, 3), repeat(neu, 17)...)...), wantOverall: neu, wantTrend: TrendNeutral, wantScore: 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.articles)

			assert.Equal(t, tt.wantOverall, got.Overall)
			assert.Equal(t, tt.wantTrend, got.Trend)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
		})
	}
}

func TestSummarize_Counts(t *testing.T) {
	got := Summarize(tagged(
		entity.SentimentPositive, entity.SentimentPositive, entity.SentimentPositive, entity.SentimentNegative,
	))

	assert.Equal(t, 3, got.Positive)
	assert.Equal(t, 1, got.Negative)
	assert.Equal(t, 0, got.Neutral)
}

func repeat(s entity.Sentiment, n int) []entity.Sentiment {
	out := make([]entity.Sentiment, n)
	for i := range out {
		out[i] = s
	}
	return out
}
