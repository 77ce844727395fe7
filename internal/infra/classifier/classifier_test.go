package classifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"crypto-mood/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScorer struct {
	labels []string
	err    error
	calls  [][]string
}

func (s *stubScorer) Name() string { return "stub" }

func (s *stubScorer) Score(_ context.Context, texts []string) ([]string, error) {
	s.calls = append(s.calls, texts)
	return s.labels, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyBatch_EmptyTextsAreNeutralWithoutCall(t *testing.T) {
	scorer := &stubScorer{labels: []string{"positive"}}
	c := New(scorer, time.Second, quietLogger())

	got := c.ClassifyBatch(context.Background(), []string{"", "Bitcoin rallies", "   "})

	assert.Equal(t, []entity.Sentiment{
		entity.SentimentNeutral, entity.SentimentPositive, entity.SentimentNeutral,
	}, got)
	require.Len(t, scorer.calls, 1)
	assert.Equal(t, []string{"Bitcoin rallies"}, scorer.calls[0])
}

func TestClassifyBatch_OnlyEmptyTexts(t *testing.T) {
	scorer := &stubScorer{}
	got := New(scorer, 0, quietLogger()).ClassifyBatch(context.Background(), []string{"", ""})

	assert.Equal(t, []entity.Sentiment{entity.SentimentNeutral, entity.SentimentNeutral}, got)
	assert.Empty(t, scorer.calls)
}

func TestClassifyBatch_PreservesOrderAndMapsLabels(t *testing.T) {
	scorer := &stubScorer{labels: []string{"negative", "LABEL_2", "", "neutral"}}
	c := New(scorer, time.Second, quietLogger())

	got := c.ClassifyBatch(context.Background(), []string{"a", "b", "c", "d"})

	assert.Equal(t, []entity.Sentiment{
		entity.SentimentNegative,
		entity.SentimentPositive,
		entity.SentimentUnknown,
		entity.SentimentNeutral,
	}, got)
}

func TestClassifyBatch_ShortLabelListMarksRestUnknown(t *testing.T) {
	scorer := &stubScorer{labels: []string{"positive"}}
	got := New(scorer, 0, quietLogger()).ClassifyBatch(context.Background(), []string{"a", "b"})

	assert.Equal(t, []entity.Sentiment{entity.SentimentPositive, entity.SentimentUnknown}, got)
}

func TestClassifyBatch_BackendErrorIsUnknown(t *testing.T) {
	scorer := &stubScorer{err: errors.New("connection refused")}
	got := New(scorer, time.Second, quietLogger()).ClassifyBatch(context.Background(), []string{"a", "", "b"})

	assert.Equal(t, []entity.Sentiment{
		entity.SentimentUnknown, entity.SentimentNeutral, entity.SentimentUnknown,
	}, got)
}

func TestUnavailable(t *testing.T) {
	c := Unavailable("huggingface", quietLogger())

	assert.False(t, c.Available())
	assert.Equal(t, "huggingface", c.Backend())
	assert.Equal(t, []entity.Sentiment{entity.SentimentUnknown, entity.SentimentNeutral},
		c.ClassifyBatch(context.Background(), []string{"headline", ""}))
}

func TestClassify_Single(t *testing.T) {
	c := New(&stubScorer{labels: []string{"NEG"}}, 0, quietLogger())

	assert.True(t, c.Available())
	assert.Equal(t, entity.SentimentNegative, c.Classify(context.Background(), "Exchange hacked"))
	assert.Equal(t, entity.SentimentNeutral, c.Classify(context.Background(), ""))
}

func TestNoop(t *testing.T) {
	c := New(NewNoop(), 0, quietLogger())

	assert.Equal(t, "noop", c.Backend())
	assert.Equal(t, []entity.Sentiment{entity.SentimentUnknown, entity.SentimentNeutral},
		c.ClassifyBatch(context.Background(), []string{"headline", ""}))
}
