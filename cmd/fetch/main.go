// Package main fetches crypto headlines from every configured provider and
// prints them, without sentiment scoring.
// Usage: crypto-mood-fetch [-hours N] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-limit N] [-output text|json]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"crypto-mood/internal/config"
	"crypto-mood/internal/infra/provider"
	"crypto-mood/internal/observability/logging"
	"crypto-mood/internal/usecase/aggregate"
)

func main() {
	var (
		hours        int
		from, to     string
		limit        int
		outputFormat string
	)
	flag.IntVar(&hours, "hours", 48, "Lookback window in hours when no date range is given")
	flag.StringVar(&from, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	flag.StringVar(&to, "to", "", "End date, inclusive (YYYY-MM-DD)")
	flag.IntVar(&limit, "limit", 0, "Print at most N articles (0 prints all)")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output format '%s' (must be 'text' or 'json')\n", outputFormat)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: crypto-mood-fetch [-hours N] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-limit N] [-output text|json]")
		os.Exit(2)
	}
	if hours <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -hours must be positive, got %d\n", hours)
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	svc := aggregate.NewService(logger, provider.FromConfig(cfg.Providers, logger)...)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	articles := svc.Aggregate(ctx, aggregate.Query{HoursAgo: &hours, From: from, To: to})
	total := len(articles)
	if limit > 0 && limit < total {
		articles = articles[:limit]
	}

	if outputFormat == "json" {
		err = writeJSON(os.Stdout, articles)
	} else {
		err = writeText(os.Stdout, articles, total)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to write output: %v\n", err)
		os.Exit(1)
	}
}
