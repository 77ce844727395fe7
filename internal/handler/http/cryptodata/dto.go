package cryptodata

import (
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/usecase/mood"
)

// TimestampLayout is ISO-8601 UTC with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Response is the body of GET /api/crypto-data.
type Response struct {
	Message          string           `json:"message"`
	Timestamp        string           `json:"timestamp"`
	News             []entity.Article `json:"news"`
	OverallSentiment string           `json:"overall_sentiment"`
	Trend            string           `json:"trend"`
}

func fromReport(r mood.Report) Response {
	news := r.News
	if news == nil {
		news = []entity.Article{}
	}
	return Response{
		Message:          r.Message,
		Timestamp:        r.Timestamp.UTC().Format(TimestampLayout),
		News:             news,
		OverallSentiment: r.Summary.Overall.String(),
		Trend:            string(r.Summary.Trend),
	}
}

// ParseTimestamp reads a Response timestamp back into a time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
