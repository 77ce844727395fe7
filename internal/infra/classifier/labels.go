package classifier

import (
	"strings"

	"crypto-mood/internal/domain/entity"
)

// MapLabel converts a backend label to a canonical sentiment. Recognised
// vocabularies are POSITIVE/NEGATIVE/NEUTRAL and their short forms
// POS/NEG/NEU (any case), and the LABEL_0..2 ids of three-class models
// (0 negative, 1 neutral, 2 positive). Anything else is UNKNOWN.
func MapLabel(label string) entity.Sentiment {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "POSITIVE", "POS", "LABEL_2":
		return entity.SentimentPositive
	case "NEGATIVE", "NEG", "LABEL_0":
		return entity.SentimentNegative
	case "NEUTRAL", "NEU", "LABEL_1":
		return entity.SentimentNeutral
	}
	return entity.SentimentUnknown
}
