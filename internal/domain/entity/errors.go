package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for article normalization.
var (
	// ErrMissingField indicates that a required provider field was empty or absent.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidPublishedAt indicates that the published timestamp could not be parsed.
	ErrInvalidPublishedAt = errors.New("invalid published_at")

	// ErrInvalidURL indicates that an article URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid article url")
)

// NormalizeError describes why a raw provider record could not become an Article.
type NormalizeError struct {
	Field string
	Value string
	Err   error
}

// Error returns a formatted error message for the normalization failure.
func (e *NormalizeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("normalize article: field '%s' (%q): %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("normalize article: field '%s': %v", e.Field, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *NormalizeError) Unwrap() error {
	return e.Err
}

func errorsJoin(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}
