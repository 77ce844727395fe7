// Command diagnose_feeds checks every feed in CRYPTO_RSS_FEEDS and reports
// whether it is reachable, parseable and recent.
//
//	go run ./scripts -timeout 20s -json feeds.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/mmcdole/gofeed"

	"crypto-mood/internal/config"
	"crypto-mood/internal/domain/entity"
	"crypto-mood/internal/observability/logging"
)

// Feed statuses.
const (
	statusOK         = "OK"
	statusInvalidURL = "INVALID_URL"
	statusHTTPError  = "HTTP_ERROR"
	statusParseError = "PARSE_ERROR"
	statusEmpty      = "EMPTY"
	statusTimeout    = "TIMEOUT"
	statusStale      = "STALE"
)

// FeedDiagnostic is the result for one feed.
type FeedDiagnostic struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	Status       string `json:"status"`
	FeedType     string `json:"feed_type,omitempty"`
	ItemCount    int    `json:"item_count"`
	WithImage    int    `json:"with_image"`
	LatestDate   string `json:"latest_date,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func main() {
	var (
		timeout  time.Duration
		staleFor time.Duration
		jsonPath string
	)
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-feed request timeout")
	flag.DurationVar(&staleFor, "stale", 72*time.Hour, "Report feeds whose newest item is older than this")
	flag.StringVar(&jsonPath, "json", "", "Also write the report as JSON to this file")
	flag.Parse()

	_ = godotenv.Load()
	logger := logging.NewTextLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	feeds := cfg.Providers.RSSFeeds
	if len(feeds) == 0 {
		fmt.Fprintln(os.Stderr, "CRYPTO_RSS_FEEDS is empty, nothing to diagnose")
		os.Exit(1)
	}

	client := &http.Client{}
	now := time.Now()
	results := make([]FeedDiagnostic, 0, len(feeds))
	for i, url := range feeds {
		logger.Info("diagnosing feed", slog.Int("n", i+1), slog.Int("total", len(feeds)), slog.String("url", url))
		results = append(results, diagnoseFeed(client, url, timeout, staleFor, now))
	}

	printReport(results)
	if jsonPath != "" {
		if err := writeJSONReport(jsonPath, results); err != nil {
			logger.Error("failed to write JSON report", slog.Any("error", err))
			os.Exit(1)
		}
	}
}

func diagnoseFeed(client *http.Client, url string, timeout, staleFor time.Duration, now time.Time) FeedDiagnostic {
	diag := FeedDiagnostic{URL: url}
	if err := entity.ValidateFeedURL(url); err != nil {
		diag.Status = statusInvalidURL
		diag.ErrorMessage = err.Error()
		return diag
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		diag.Status = statusHTTPError
		diag.ErrorMessage = err.Error()
		return diag
	}
	req.Header.Set("User-Agent", "crypto-mood-diagnostic/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	start := time.Now()
	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		diag.Status = statusHTTPError
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			diag.Status = statusTimeout
		}
		diag.ErrorMessage = err.Error()
		return diag
	}
	defer func() { _ = resp.Body.Close() }()

	if final := resp.Request.URL.String(); final != url {
		diag.RedirectURL = final
	}
	if resp.StatusCode != http.StatusOK {
		diag.Status = statusHTTPError
		diag.ErrorMessage = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return diag
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		diag.Status = statusParseError
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.Title = feed.Title
	diag.FeedType = feed.FeedType
	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = statusEmpty
		return diag
	}

	var latest time.Time
	for _, it := range feed.Items {
		if it.Image != nil && it.Image.URL != "" {
			diag.WithImage++
		}
		if it.PublishedParsed != nil && it.PublishedParsed.After(latest) {
			latest = *it.PublishedParsed
		} else if it.UpdatedParsed != nil && it.UpdatedParsed.After(latest) {
			latest = *it.UpdatedParsed
		}
	}

	diag.Status = statusOK
	if !latest.IsZero() {
		diag.LatestDate = latest.UTC().Format(entity.PublishedAtLayout)
		if now.Sub(latest) > staleFor {
			diag.Status = statusStale
		}
	}
	return diag
}

func printReport(results []FeedDiagnostic) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STATUS\tITEMS\tIMAGES\tLATEST\tMS\tURL")
	ok := 0
	for _, d := range results {
		if d.Status == statusOK {
			ok++
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%s\n",
			d.Status, d.ItemCount, d.WithImage, d.LatestDate, d.ResponseTime, d.URL)
	}
	_ = tw.Flush()

	fmt.Printf("\n%d/%d feeds OK\n", ok, len(results))
	for _, d := range results {
		if d.ErrorMessage != "" {
			fmt.Printf("  %s: %s\n", d.URL, d.ErrorMessage)
		}
		if d.RedirectURL != "" {
			fmt.Printf("  %s redirects to %s\n", d.URL, d.RedirectURL)
		}
	}
}

func writeJSONReport(path string, results []FeedDiagnostic) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
