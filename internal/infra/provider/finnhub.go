package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/resilience/retry"
	"crypto-mood/internal/usecase/aggregate"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const (
	finnhubName    = "finnhub"
	finnhubTimeout = 15 * time.Second
)

// Finnhub reads Finnhub market news in the crypto category.
type Finnhub struct {
	base
	apiKey string
	api    *finnhub.DefaultApiService
}

// NewFinnhub creates the Finnhub adapter on top of the official client.
func NewFinnhub(apiKey string, opts Options) *Finnhub {
	b := newBase(finnhubName, "", finnhubTimeout, opts)

	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = userAgent
	cfg.HTTPClient = b.client
	if b.baseURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: b.baseURL}}
	}

	return &Finnhub{
		base:   b,
		apiKey: apiKey,
		api:    finnhub.NewAPIClient(cfg).DefaultApi,
	}
}

// Fetch implements aggregate.Provider. The endpoint returns the latest crypto
// news and has no date parameters.
func (p *Finnhub) Fetch(ctx context.Context, _ aggregate.Criteria) ([]entity.Article, error) {
	return p.run(ctx, p.apiKey != "", func(ctx context.Context) ([]entity.RawArticle, error) {
		news, resp, err := p.api.MarketNews(ctx).Category("crypto").Execute()
		if err != nil {
			if resp != nil && resp.StatusCode != http.StatusOK {
				return nil, retry.NewHTTPError(resp, err.Error())
			}
			return nil, fmt.Errorf("finnhub market news: %w", err)
		}

		raws := make([]entity.RawArticle, 0, len(news))
		for _, n := range news {
			raws = append(raws, entity.RawArticle{
				Title:       deref(n.Headline),
				Source:      deref(n.Source),
				URL:         deref(n.Url),
				PublishedAt: unixTimestamp(deref(n.Datetime)),
				ImageURL:    deref(n.Image),
			})
		}
		return raws, nil
	})
}

// unixTimestamp formats seconds since the epoch, or "" for zero.
func unixTimestamp(sec int64) string {
	if sec <= 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
