package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/usecase/aggregate"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	rssName        = "rss"
	rssTimeout     = 15 * time.Second
	rssParallelism = 4
)

// RSS reads a fixed list of RSS/Atom feeds. Without an explicit date range
// it keeps only items inside the hours-ago lookback.
type RSS struct {
	base
	feeds []string
}

// NewRSS creates the feed adapter. With no feeds every Fetch fails with
// ErrMissingCredential.
func NewRSS(feeds []string, opts Options) *RSS {
	return &RSS{
		base:  newBase(rssName, "", rssTimeout, opts),
		feeds: feeds,
	}
}

// Fetch implements aggregate.Provider. A failing feed is skipped; the call
// fails only when every feed fails.
func (p *RSS) Fetch(ctx context.Context, c aggregate.Criteria) ([]entity.Article, error) {
	return p.run(ctx, len(p.feeds) > 0, func(ctx context.Context) ([]entity.RawArticle, error) {
		logger := logging.WithRequestID(ctx, p.logger)
		results := make([][]entity.RawArticle, len(p.feeds))
		var (
			mu   sync.Mutex
			errs []error
		)

		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(rssParallelism)
		for i, feedURL := range p.feeds {
			eg.Go(func() error {
				items, err := p.fetchFeed(egCtx, feedURL)
				if err != nil {
					logger.Warn("rss feed failed",
						slog.String("feed", feedURL),
						slog.Any("error", err))
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return nil
				}
				results[i] = items
				return nil
			})
		}
		_ = eg.Wait()

		if len(errs) == len(p.feeds) {
			return nil, fmt.Errorf("all rss feeds failed: %w", errors.Join(errs...))
		}

		var since time.Time
		if c.FromDate == "" && c.ToDate == "" {
			since = p.lookback(c)
		}

		var raws []entity.RawArticle
		for _, items := range results {
			for _, raw := range items {
				if !since.IsZero() && !publishedAfter(raw.PublishedAt, since) {
					continue
				}
				raws = append(raws, raw)
			}
		}
		return raws, nil
	})
}

func (p *RSS) fetchFeed(ctx context.Context, feedURL string) ([]entity.RawArticle, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = p.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = hostOf(feedURL)
	}

	raws := make([]entity.RawArticle, 0, len(feed.Items))
	for _, it := range feed.Items {
		raws = append(raws, entity.RawArticle{
			Title:       it.Title,
			Source:      source,
			URL:         it.Link,
			PublishedAt: itemPublished(it),
			ImageURL:    itemImage(it),
		})
	}
	return raws, nil
}

func itemPublished(it *gofeed.Item) string {
	switch {
	case it.PublishedParsed != nil:
		return it.PublishedParsed.UTC().Format(time.RFC3339)
	case it.UpdatedParsed != nil:
		return it.UpdatedParsed.UTC().Format(time.RFC3339)
	case it.Published != "":
		return it.Published
	}
	return it.Updated
}

// itemImage returns the item image, an image enclosure, or the first <img>
// found in the item's HTML description or content.
func itemImage(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	for _, html := range []string{it.Description, it.Content} {
		if src := firstImageSrc(html); src != "" {
			return src
		}
	}
	return ""
}

func firstImageSrc(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return ""
	}
	return src
}

func publishedAfter(raw string, since time.Time) bool {
	t, err := entity.ParsePublishedAt(raw)
	if err != nil {
		// Unparseable timestamps are left for the normalizer to reject.
		return true
	}
	return !t.Before(since)
}

func hostOf(rawURL string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
