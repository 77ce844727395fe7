package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// ValidateArticleURL checks that an article URL can serve as a deduplication key.
// Only absolute http:// or https:// URLs are eligible.
func ValidateArticleURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

// ValidateFeedURL validates an operator-configured feed URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS and has a host.
func ValidateFeedURL(rawURL string) error {
	if rawURL == "" {
		return &NormalizeError{Field: "feed_url", Err: ErrMissingField}
	}
	if len(rawURL) > maxURLLength {
		return fmt.Errorf("%w: feed url must not exceed %d characters", ErrInvalidURL, maxURLLength)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse feed url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: feed url must use http or https scheme", ErrInvalidURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: feed url must have a valid host", ErrInvalidURL)
	}
	return nil
}
