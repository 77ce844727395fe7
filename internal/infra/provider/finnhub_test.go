package provider_test

import (
	"context"
	"net/http"
	"testing"

	"crypto-mood/internal/infra/provider"
	"crypto-mood/internal/usecase/aggregate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinnhub_Fetch(t *testing.T) {
	var (
		path, category, token string
	)
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		category = r.URL.Query().Get("category")
		token = r.Header.Get("X-Finnhub-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
		  {"category": "crypto", "datetime": 1714557600, "headline": "Bitcoin miners rally", "id": 1,
		   "image": "https://img.example/miners.jpg", "related": "", "source": "CoinDesk", "summary": "",
		   "url": "https://coindesk.example/miners"},
		  {"category": "crypto", "datetime": 0, "headline": "Undated", "id": 2,
		   "image": "", "related": "", "source": "CoinDesk", "summary": "", "url": "https://coindesk.example/undated"}
		]`))
	})

	got, err := provider.NewFinnhub("fh-key", testOptions(srv.URL)).Fetch(context.Background(), aggregate.Criteria{})

	require.NoError(t, err)
	assert.Equal(t, "/news", path)
	assert.Equal(t, "crypto", category)
	assert.Equal(t, "fh-key", token)

	require.Len(t, got, 1)
	assert.Equal(t, "Bitcoin miners rally", got[0].Title)
	assert.Equal(t, "2024-05-01T10:00:00Z", got[0].PublishedAtString())
	require.True(t, got[0].HasImage())
	assert.Equal(t, "https://img.example/miners.jpg", *got[0].ImageURL)
}

func TestFinnhub_MissingKey(t *testing.T) {
	_, err := provider.NewFinnhub("", testOptions("")).Fetch(context.Background(), aggregate.Criteria{})
	assert.ErrorIs(t, err, aggregate.ErrMissingCredential)
}

func TestFinnhub_Unauthorized(t *testing.T) {
	srv, calls := countingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
	})

	_, err := provider.NewFinnhub("bad", testOptions(srv.URL)).Fetch(context.Background(), aggregate.Criteria{})

	assert.ErrorIs(t, err, aggregate.ErrProviderUnavailable)
	assert.EqualValues(t, 1, calls.Load())
}
