package main

import (
	"bytes"
	"testing"
	"time"

	"crypto-mood/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []entity.Article {
	img := "https://img.example/eth.png"
	return []entity.Article{
		{Title: "Ether upgrade ships", Source: "Decrypt", URL: "https://decrypt.example/eth",
			PublishedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), ImageURL: &img},
		{Title: "Miners sell reserves", Source: "CoinDesk", URL: "https://coindesk.example/miners",
			PublishedAt: time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, fixtures(), 5))

	want := "Fetched 5 unique articles (showing 2, 1 with image)\n\n" +
		"1. Ether upgrade ships\n   Decrypt | 2024-05-01T10:00:00Z | image: yes\n   https://decrypt.example/eth\n" +
		"2. Miners sell reserves\n   CoinDesk | 2024-05-01T08:30:00Z | image: no\n   https://coindesk.example/miners\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, fixtures()[1:]))

	assert.JSONEq(t, `[{"title":"Miners sell reserves","source":"CoinDesk","url":"https://coindesk.example/miners",
		"published_at":"2024-05-01T08:30:00Z","image_url":null,"sentiment":null}]`, buf.String())
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}
