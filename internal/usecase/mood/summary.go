package mood

import (
	"log/slog"

	"crypto-mood/internal/domain/entity"
)

// Trend is the market direction shown next to the overall sentiment.
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
	TrendNeutral Trend = "Neutral"
	TrendUnknown Trend = "UNKNOWN"
)

// Score thresholds for the overall label.
const (
	positiveThreshold = 0.15
	negativeThreshold = -0.15
)

// Summary is the aggregate sentiment of a set of articles.
type Summary struct {
	Overall  entity.Sentiment
	Trend    Trend
	Positive int
	Negative int
	Neutral  int
	// Score is (positive - negative) / (positive + negative + neutral).
	Score float64
}

// Summarize reduces tagged articles to an overall sentiment. UNKNOWN and
// untagged articles are not counted. With nothing counted the result is
// NEUTRAL with an UNKNOWN trend.
func Summarize(articles []entity.Article) Summary {
	var s Summary
	for _, a := range articles {
		switch a.Sentiment {
		case entity.SentimentPositive:
			s.Positive++
		case entity.SentimentNegative:
			s.Negative++
		case entity.SentimentNeutral:
			s.Neutral++
		}
	}

	total := s.Positive + s.Negative + s.Neutral
	slog.Debug("sentiment counts",
		slog.Int("positive", s.Positive),
		slog.Int("negative", s.Negative),
		slog.Int("neutral", s.Neutral),
		slog.Int("articles", len(articles)))

	if total == 0 {
		s.Overall = entity.SentimentNeutral
		s.Trend = TrendUnknown
		return s
	}

	s.Score = float64(s.Positive-s.Negative) / float64(total)
	switch {
	case s.Score > positiveThreshold:
		s.Overall, s.Trend = entity.SentimentPositive, TrendBullish
	case s.Score < negativeThreshold:
		s.Overall, s.Trend = entity.SentimentNegative, TrendBearish
	default:
		s.Overall, s.Trend = entity.SentimentNeutral, TrendNeutral
	}
	return s
}
