package entity

// Sentiment is the label attached to a headline by the classifier stage.
type Sentiment string

// Canonical sentiment labels. Backends with other vocabularies are mapped onto these.
const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentUnknown  Sentiment = "UNKNOWN"
)

// Valid reports whether s is one of the four canonical labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentUnknown:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s Sentiment) String() string {
	return string(s)
}
