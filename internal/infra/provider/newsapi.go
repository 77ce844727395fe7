package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/usecase/aggregate"
)

const (
	newsAPIName    = "newsapi"
	newsAPIURL     = "https://newsapi.org/v2/everything"
	newsAPITimeout = 15 * time.Second
	newsAPIQuery   = "(crypto OR cryptocurrency OR bitcoin OR ethereum OR blockchain OR NFT OR web3) NOT (giveaway OR airdrop OR free)"
)

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// NewsAPI searches NewsAPI.org for crypto headlines.
type NewsAPI struct {
	base
	apiKey string
}

// NewNewsAPI creates the NewsAPI.org adapter. An empty apiKey makes every
// Fetch fail with ErrMissingCredential.
func NewNewsAPI(apiKey string, opts Options) *NewsAPI {
	return &NewsAPI{
		base:   newBase(newsAPIName, newsAPIURL, newsAPITimeout, opts),
		apiKey: apiKey,
	}
}

// Fetch implements aggregate.Provider.
func (p *NewsAPI) Fetch(ctx context.Context, c aggregate.Criteria) ([]entity.Article, error) {
	return p.run(ctx, p.apiKey != "", func(ctx context.Context) ([]entity.RawArticle, error) {
		var resp newsAPIResponse
		if err := p.getJSON(ctx, p.baseURL+"?"+p.query(c).Encode(), nil, &resp); err != nil {
			return nil, err
		}
		if resp.Status == "error" {
			return nil, fmt.Errorf("newsapi error %s: %s", resp.Code, resp.Message)
		}

		raws := make([]entity.RawArticle, 0, len(resp.Articles))
		for _, a := range resp.Articles {
			raws = append(raws, entity.RawArticle{
				Title:       a.Title,
				Source:      a.Source.Name,
				URL:         a.URL,
				PublishedAt: a.PublishedAt,
				ImageURL:    a.URLToImage,
			})
		}
		return raws, nil
	})
}

// query builds the request parameters. An explicit from date takes
// precedence over the hours-ago lookback; to is only sent together with from.
func (p *NewsAPI) query(c aggregate.Criteria) url.Values {
	q := url.Values{}
	q.Set("q", newsAPIQuery)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", "50")
	q.Set("apiKey", p.apiKey)

	switch {
	case c.FromDate != "" && c.ToDate != "":
		q.Set("from", c.FromDate)
		q.Set("to", c.ToDate)
	case c.FromDate != "":
		q.Set("from", c.FromDate)
	default:
		q.Set("from", p.lookback(c).Format(entity.PublishedAtLayout))
	}
	return q
}
