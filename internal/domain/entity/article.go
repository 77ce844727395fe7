// Package entity defines the core domain values of the mood service.
// It contains the canonical Article produced by the normalizer, the sentiment
// vocabulary shared by the classifier and summary stages, and domain errors.
package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// PublishedAtLayout is the wire format of Article.PublishedAt: second precision with a literal Z.
const PublishedAtLayout = "2006-01-02T15:04:05Z"

const (
	placeholderTitle  = "No Title"
	placeholderSource = "Unknown Source"
)

// RawArticle is a provider record reduced to the fields the normalizer needs.
// An empty string means the provider did not supply the field.
type RawArticle struct {
	Title       string
	Source      string
	URL         string
	PublishedAt string
	ImageURL    string
}

// Article represents a normalized news article.
// Values are immutable once built by NormalizeArticle; the only later change is
// the sentiment tag, applied on a copy via WithSentiment.
type Article struct {
	Title       string
	Source      string
	URL         string
	PublishedAt time.Time
	ImageURL    *string
	Sentiment   Sentiment
}

// NormalizeArticle converts a raw provider record into an Article.
// It fails with a *NormalizeError when title, source, url or published time is
// missing, or when the published time cannot be parsed. Timestamps without a zone
// are taken as UTC; zoned timestamps are converted to UTC.
func NormalizeArticle(raw RawArticle) (Article, error) {
	switch {
	case raw.Title == "":
		return Article{}, &NormalizeError{Field: "title", Err: ErrMissingField}
	case raw.Source == "":
		return Article{}, &NormalizeError{Field: "source", Err: ErrMissingField}
	case raw.URL == "":
		return Article{}, &NormalizeError{Field: "url", Err: ErrMissingField}
	case raw.PublishedAt == "":
		return Article{}, &NormalizeError{Field: "published_at", Err: ErrMissingField}
	}

	publishedAt, err := ParsePublishedAt(raw.PublishedAt)
	if err != nil {
		return Article{}, &NormalizeError{Field: "published_at", Value: raw.PublishedAt, Err: err}
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = placeholderTitle
	}
	source := strings.TrimSpace(raw.Source)
	if source == "" {
		source = placeholderSource
	}

	var imageURL *string
	if raw.ImageURL != "" {
		img := raw.ImageURL
		imageURL = &img
	}

	return Article{
		Title:       title,
		Source:      source,
		URL:         raw.URL,
		PublishedAt: publishedAt,
		ImageURL:    imageURL,
	}, nil
}

// ParsePublishedAt parses a provider timestamp in any common layout and returns
// it in UTC, truncated to whole seconds.
func ParsePublishedAt(raw string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, errorsJoin(ErrInvalidPublishedAt, err)
	}
	t = t.UTC().Truncate(time.Second)
	// Years outside 1..9999 cannot be written in the wire layout.
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, ErrInvalidPublishedAt
	}
	return t, nil
}

// PublishedAtString returns PublishedAt in the wire layout.
func (a Article) PublishedAtString() string {
	return a.PublishedAt.UTC().Format(PublishedAtLayout)
}

// HasImage reports whether the article carries an image URL.
func (a Article) HasImage() bool {
	return a.ImageURL != nil && *a.ImageURL != ""
}

// WithSentiment returns a copy of the article tagged with s.
func (a Article) WithSentiment(s Sentiment) Article {
	a.Sentiment = s
	return a
}

type articleJSON struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	PublishedAt string     `json:"published_at"`
	ImageURL    *string    `json:"image_url"`
	Sentiment   *Sentiment `json:"sentiment"`
}

// MarshalJSON writes the article with snake_case keys. A missing image or an
// unclassified sentiment is written as null.
func (a Article) MarshalJSON() ([]byte, error) {
	out := articleJSON{
		Title:       a.Title,
		Source:      a.Source,
		URL:         a.URL,
		PublishedAt: a.PublishedAtString(),
		ImageURL:    a.ImageURL,
	}
	if a.Sentiment != "" {
		s := a.Sentiment
		out.Sentiment = &s
	}
	return json.Marshal(out)
}
