package entity

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawArticle {
	return RawArticle{
		Title:       "Bitcoin breaks resistance",
		Source:      "CoinDesk",
		URL:         "https://example.com/btc",
		PublishedAt: "2024-05-01T12:00:00Z",
		ImageURL:    "https://example.com/btc.png",
	}
}

func TestNormalizeArticle_Valid(t *testing.T) {
	article, err := NormalizeArticle(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "Bitcoin breaks resistance", article.Title)
	assert.Equal(t, "CoinDesk", article.Source)
	assert.Equal(t, "https://example.com/btc", article.URL)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), article.PublishedAt)
	require.NotNil(t, article.ImageURL)
	assert.Equal(t, "https://example.com/btc.png", *article.ImageURL)
	assert.Empty(t, article.Sentiment)
}

func TestNormalizeArticle_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*RawArticle)
		field string
	}{
		{name: "missing title", mut: func(r *RawArticle) { r.Title = "" }, field: "title"},
		{name: "missing source", mut: func(r *RawArticle) { r.Source = "" }, field: "source"},
		{name: "missing url", mut: func(r *RawArticle) { r.URL = "" }, field: "url"},
		{name: "missing published", mut: func(r *RawArticle) { r.PublishedAt = "" }, field: "published_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mut(&raw)

			_, err := NormalizeArticle(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingField))

			var nerr *NormalizeError
			require.True(t, errors.As(err, &nerr))
			assert.Equal(t, tt.field, nerr.Field)
		})
	}
}

func TestNormalizeArticle_Timestamps(t *testing.T) {
	tests := []struct {
		name      string
		published string
		want      string
	}{
		{name: "naive timestamp assumed UTC", published: "2024-05-01T12:00:00", want: "2024-05-01T12:00:00Z"},
		{name: "zoned timestamp converted", published: "2024-05-01T14:00:00+02:00", want: "2024-05-01T12:00:00Z"},
		{name: "fractional seconds truncated", published: "2024-05-01T12:00:00.987654Z", want: "2024-05-01T12:00:00Z"},
		{name: "rfc1123 from feeds", published: "Wed, 01 May 2024 12:00:00 GMT", want: "2024-05-01T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.PublishedAt = tt.published

			article, err := NormalizeArticle(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, article.PublishedAtString())
			assert.Equal(t, time.UTC, article.PublishedAt.Location())
		})
	}
}

func TestNormalizeArticle_InvalidTimestamp(t *testing.T) {
	raw := validRaw()
	raw.PublishedAt = "not a date"

	_, err := NormalizeArticle(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPublishedAt))
	assert.Contains(t, err.Error(), "not a date")
}

func TestNormalizeArticle_Placeholders(t *testing.T) {
	raw := validRaw()
	raw.Title = "   "
	raw.Source = "\t"

	article, err := NormalizeArticle(raw)
	require.NoError(t, err)
	assert.Equal(t, "No Title", article.Title)
	assert.Equal(t, "Unknown Source", article.Source)
}

func TestNormalizeArticle_TrimsText(t *testing.T) {
	raw := validRaw()
	raw.Title = "  Ether rallies \n"
	raw.Source = " Decrypt "

	article, err := NormalizeArticle(raw)
	require.NoError(t, err)
	assert.Equal(t, "Ether rallies", article.Title)
	assert.Equal(t, "Decrypt", article.Source)
}

func TestArticle_WithSentiment(t *testing.T) {
	article, err := NormalizeArticle(validRaw())
	require.NoError(t, err)

	tagged := article.WithSentiment(SentimentPositive)

	assert.Equal(t, SentimentPositive, tagged.Sentiment)
	assert.Empty(t, article.Sentiment, "original must not change")
	assert.Equal(t, article.URL, tagged.URL)
}

func TestArticle_MarshalJSON(t *testing.T) {
	raw := validRaw()
	raw.ImageURL = ""
	article, err := NormalizeArticle(raw)
	require.NoError(t, err)

	data, err := json.Marshal(article)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Bitcoin breaks resistance",
		"source": "CoinDesk",
		"url": "https://example.com/btc",
		"published_at": "2024-05-01T12:00:00Z",
		"image_url": null,
		"sentiment": null
	}`, string(data))

	data, err = json.Marshal(article.WithSentiment(SentimentNegative))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sentiment":"NEGATIVE"`)
}

func TestArticle_HasImage(t *testing.T) {
	withImage, err := NormalizeArticle(validRaw())
	require.NoError(t, err)
	assert.True(t, withImage.HasImage())

	raw := validRaw()
	raw.ImageURL = ""
	withoutImage, err := NormalizeArticle(raw)
	require.NoError(t, err)
	assert.False(t, withoutImage.HasImage())
}

func TestSentiment_Valid(t *testing.T) {
	for _, s := range []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentUnknown} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Sentiment("MIXED").Valid())
	assert.False(t, Sentiment("").Valid())
}
