package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateArticleURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://example.com/a", wantErr: false},
		{name: "http", url: "http://example.com/a", wantErr: false},
		{name: "empty", url: "", wantErr: true},
		{name: "relative path", url: "/news/a", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com/a", wantErr: true},
		{name: "scheme-relative", url: "//example.com/a", wantErr: true},
		{name: "uppercase scheme", url: "HTTPS://example.com/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticleURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArticleURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidURL) {
				t.Errorf("ValidateArticleURL(%q) error = %v, want ErrInvalidURL", tt.url, err)
			}
		})
	}
}

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid https URL", url: "https://cointelegraph.com/rss", wantErr: false},
		{name: "valid URL with port", url: "http://localhost:8080/feed.xml", wantErr: false},
		{name: "valid URL with query", url: "https://example.com/feed?format=atom", wantErr: false},
		{name: "empty URL", url: "", wantErr: true},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: true},
		{name: "missing host", url: "https:///feed", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeedURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFeedURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
