// Package config loads the service configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file named by CONFIG_FILE, then environment variables. Credentials are read
// from the environment only. A missing credential is not an error; it
// disables the provider or classifier backend that needs it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	envconfig "crypto-mood/pkg/config"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Cache      CacheConfig      `yaml:"cache"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// AllowedOrigins is the CORS allow-list for /api/*.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ProvidersConfig configures the news adapters.
type ProvidersConfig struct {
	NewsAPIKey     string `yaml:"-"`
	CryptoPanicKey string `yaml:"-"`
	FinnhubKey     string `yaml:"-"`

	RSSFeeds []string `yaml:"rss_feeds"`

	NewsAPITimeout     time.Duration `yaml:"newsapi_timeout"`
	CryptoPanicTimeout time.Duration `yaml:"cryptopanic_timeout"`
	FinnhubTimeout     time.Duration `yaml:"finnhub_timeout"`
	RSSTimeout         time.Duration `yaml:"rss_timeout"`
}

// CacheConfig configures the response cache. A non-empty RedisURL selects
// the Redis backend; otherwise an in-process LRU is used.
type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	RedisURL   string        `yaml:"-"`
	KeyPrefix  string        `yaml:"key_prefix"`
}

// Backend returns "redis" or "memory".
func (c CacheConfig) Backend() string {
	if c.RedisURL != "" {
		return "redis"
	}
	return "memory"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:5173"},
		},
		Providers: ProvidersConfig{
			NewsAPITimeout:     15 * time.Second,
			CryptoPanicTimeout: 10 * time.Second,
			FinnhubTimeout:     15 * time.Second,
			RSSTimeout:         15 * time.Second,
		},
		Classifier: defaultClassifier(),
		Cache: CacheConfig{
			TTL:        300 * time.Second,
			MaxEntries: 256,
			KeyPrefix:  "crypto-mood:",
		},
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := envconfig.GetEnvString("CONFIG_FILE", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	s := &c.Server
	s.Port = envconfig.GetEnvInt("PORT", s.Port)
	s.ReadTimeout = envconfig.GetEnvDuration("HTTP_READ_TIMEOUT", s.ReadTimeout)
	s.WriteTimeout = envconfig.GetEnvDuration("HTTP_WRITE_TIMEOUT", s.WriteTimeout)
	s.IdleTimeout = envconfig.GetEnvDuration("HTTP_IDLE_TIMEOUT", s.IdleTimeout)
	s.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", s.ShutdownTimeout)
	s.AllowedOrigins = envconfig.GetEnvStringList("ALLOWED_ORIGINS", s.AllowedOrigins)

	p := &c.Providers
	p.NewsAPIKey = envconfig.GetEnvString("NEWSAPI_ORG_KEY", p.NewsAPIKey)
	p.CryptoPanicKey = envconfig.GetEnvString("CRYPTO_PANIC_KEY", p.CryptoPanicKey)
	p.FinnhubKey = envconfig.GetEnvString("FINNHUB_API_KEY", p.FinnhubKey)
	p.RSSFeeds = envconfig.GetEnvStringList("CRYPTO_RSS_FEEDS", p.RSSFeeds)
	p.NewsAPITimeout = envconfig.GetEnvDuration("NEWSAPI_TIMEOUT", p.NewsAPITimeout)
	p.CryptoPanicTimeout = envconfig.GetEnvDuration("CRYPTOPANIC_TIMEOUT", p.CryptoPanicTimeout)
	p.FinnhubTimeout = envconfig.GetEnvDuration("FINNHUB_TIMEOUT", p.FinnhubTimeout)
	p.RSSTimeout = envconfig.GetEnvDuration("RSS_TIMEOUT", p.RSSTimeout)

	c.Classifier.applyEnv()

	k := &c.Cache
	k.TTL = envconfig.GetEnvDuration("CACHE_TTL", k.TTL)
	k.MaxEntries = envconfig.GetEnvInt("CACHE_MAX_ENTRIES", k.MaxEntries)
	k.RedisURL = envconfig.GetEnvString("REDIS_URL", k.RedisURL)
	k.KeyPrefix = envconfig.GetEnvString("CACHE_KEY_PREFIX", k.KeyPrefix)
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.Server.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
		{"NEWSAPI_TIMEOUT", c.Providers.NewsAPITimeout},
		{"CRYPTOPANIC_TIMEOUT", c.Providers.CryptoPanicTimeout},
		{"FINNHUB_TIMEOUT", c.Providers.FinnhubTimeout},
		{"RSS_TIMEOUT", c.Providers.RSSTimeout},
		{"CACHE_TTL", c.Cache.TTL},
	}
	for _, d := range durations {
		if err := envconfig.ValidatePositiveDuration(d.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}
	for _, origin := range c.Server.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			errs = append(errs, fmt.Errorf("ALLOWED_ORIGINS: %w", err))
		}
	}
	for _, feed := range c.Providers.RSSFeeds {
		u, err := url.Parse(feed)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("CRYPTO_RSS_FEEDS: invalid feed url %q", feed))
		}
	}
	if c.Cache.MaxEntries < 1 {
		errs = append(errs, fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", c.Cache.MaxEntries))
	}
	if err := c.Classifier.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("origin %q must be scheme://host[:port]", origin)
	}
	if u.Path != "" || strings.HasSuffix(origin, "/") {
		return fmt.Errorf("origin %q must not contain a path", origin)
	}
	return nil
}
