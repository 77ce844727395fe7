package provider

import (
	"log/slog"

	"crypto-mood/internal/config"
	"crypto-mood/internal/usecase/aggregate"
)

// FromConfig builds every adapter in pipeline order: NewsAPI, CryptoPanic,
// Finnhub, RSS. Adapters without credentials are still returned; their
// Fetch fails with aggregate.ErrMissingCredential and the pipeline skips them.
func FromConfig(cfg config.ProvidersConfig, logger *slog.Logger) []aggregate.Provider {
	providers := []aggregate.Provider{
		NewNewsAPI(cfg.NewsAPIKey, Options{Logger: logger, Timeout: cfg.NewsAPITimeout}),
		NewCryptoPanic(cfg.CryptoPanicKey, Options{Logger: logger, Timeout: cfg.CryptoPanicTimeout}),
		NewFinnhub(cfg.FinnhubKey, Options{Logger: logger, Timeout: cfg.FinnhubTimeout}),
		NewRSS(cfg.RSSFeeds, Options{Logger: logger, Timeout: cfg.RSSTimeout}),
	}

	if logger != nil {
		configured := Configured(cfg)
		if len(configured) == 0 {
			logger.Warn("no news provider configured, responses will be empty")
		} else {
			logger.Info("news providers configured", slog.Any("providers", configured))
		}
	}
	return providers
}

// Configured lists the adapters that have the credentials or feeds they need.
func Configured(cfg config.ProvidersConfig) []string {
	var names []string
	if cfg.NewsAPIKey != "" {
		names = append(names, newsAPIName)
	}
	if cfg.CryptoPanicKey != "" {
		names = append(names, cryptoPanicName)
	}
	if cfg.FinnhubKey != "" {
		names = append(names, finnhubName)
	}
	if len(cfg.RSSFeeds) > 0 {
		names = append(names, rssName)
	}
	return names
}
