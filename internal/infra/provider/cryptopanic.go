package provider

import (
	"context"
	"net/url"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/usecase/aggregate"
)

const (
	cryptoPanicName    = "cryptopanic"
	cryptoPanicURL     = "https://cryptopanic.com/api/v1/posts/"
	cryptoPanicTimeout = 10 * time.Second
)

type cryptoPanicResponse struct {
	Results []cryptoPanicPost `json:"results"`
}

type cryptoPanicPost struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	Source    struct {
		Title  string `json:"title"`
		Domain string `json:"domain"`
	} `json:"source"`
}

// CryptoPanic reads the public CryptoPanic posts feed. The API has no date
// range, so date bounds are applied by the pipeline.
type CryptoPanic struct {
	base
	authToken string
}

// NewCryptoPanic creates the CryptoPanic adapter.
func NewCryptoPanic(authToken string, opts Options) *CryptoPanic {
	return &CryptoPanic{
		base:      newBase(cryptoPanicName, cryptoPanicURL, cryptoPanicTimeout, opts),
		authToken: authToken,
	}
}

// Fetch implements aggregate.Provider.
func (p *CryptoPanic) Fetch(ctx context.Context, _ aggregate.Criteria) ([]entity.Article, error) {
	return p.run(ctx, p.authToken != "", func(ctx context.Context) ([]entity.RawArticle, error) {
		q := url.Values{}
		q.Set("auth_token", p.authToken)
		q.Set("public", "true")

		var resp cryptoPanicResponse
		if err := p.getJSON(ctx, p.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, err
		}

		raws := make([]entity.RawArticle, 0, len(resp.Results))
		for _, post := range resp.Results {
			raws = append(raws, entity.RawArticle{
				Title:       post.Title,
				Source:      post.Source.Domain,
				URL:         post.URL,
				PublishedAt: post.CreatedAt,
			})
		}
		return raws, nil
	})
}
