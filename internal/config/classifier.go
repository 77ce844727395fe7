package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	envconfig "crypto-mood/pkg/config"
)

// Sentiment backends.
const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendClaude      = "claude"
	BackendNoop        = "noop"
)

// ClassifierConfig selects and tunes the sentiment backend.
type ClassifierConfig struct {
	// Backend is one of huggingface, openai, claude or noop.
	Backend string `yaml:"backend"`

	HuggingFaceToken string `yaml:"-"`
	HuggingFaceModel string `yaml:"huggingface_model"`
	HuggingFaceURL   string `yaml:"huggingface_url"`

	OpenAIKey   string `yaml:"-"`
	OpenAIModel string `yaml:"openai_model"`

	AnthropicKey string `yaml:"-"`
	ClaudeModel  string `yaml:"claude_model"`

	// Timeout bounds one classification batch.
	Timeout time.Duration `yaml:"timeout"`

	// RequestsPerSecond and Burst pace outbound backend calls.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Concurrency is the number of chunks in flight; BatchSize is the number
	// of headlines per backend request.
	Concurrency int `yaml:"concurrency"`
	BatchSize   int `yaml:"batch_size"`
}

func defaultClassifier() ClassifierConfig {
	return ClassifierConfig{
		Backend:           BackendHuggingFace,
		HuggingFaceModel:  "ProsusAI/finbert",
		HuggingFaceURL:    "https://api-inference.huggingface.co/models",
		OpenAIModel:       "gpt-4o-mini",
		ClaudeModel:       "claude-haiku-4-5",
		Timeout:           20 * time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
		Concurrency:       4,
		BatchSize:         16,
	}
}

func (c *ClassifierConfig) applyEnv() {
	c.Backend = strings.ToLower(envconfig.GetEnvString("SENTIMENT_BACKEND", c.Backend))
	c.HuggingFaceToken = envconfig.GetEnvString("HUGGINGFACE_API_TOKEN", c.HuggingFaceToken)
	c.HuggingFaceModel = envconfig.GetEnvString("HUGGINGFACE_MODEL", c.HuggingFaceModel)
	c.HuggingFaceURL = envconfig.GetEnvString("HUGGINGFACE_API_URL", c.HuggingFaceURL)
	c.OpenAIKey = envconfig.GetEnvString("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIModel = envconfig.GetEnvString("OPENAI_MODEL", c.OpenAIModel)
	c.AnthropicKey = envconfig.GetEnvString("ANTHROPIC_API_KEY", c.AnthropicKey)
	c.ClaudeModel = envconfig.GetEnvString("CLAUDE_MODEL", c.ClaudeModel)
	c.Timeout = envconfig.GetEnvDuration("CLASSIFIER_TIMEOUT", c.Timeout)
	c.RequestsPerSecond = envconfig.GetEnvFloat("CLASSIFIER_RPS", c.RequestsPerSecond)
	c.Burst = envconfig.GetEnvInt("CLASSIFIER_BURST", c.Burst)
	c.Concurrency = envconfig.GetEnvInt("CLASSIFIER_CONCURRENCY", c.Concurrency)
	c.BatchSize = envconfig.GetEnvInt("CLASSIFIER_BATCH_SIZE", c.BatchSize)
}

// Credential returns the API credential of the selected backend.
func (c *ClassifierConfig) Credential() string {
	switch c.Backend {
	case BackendHuggingFace:
		return c.HuggingFaceToken
	case BackendOpenAI:
		return c.OpenAIKey
	case BackendClaude:
		return c.AnthropicKey
	}
	return ""
}

// Validate checks the classifier settings. Missing credentials are allowed.
func (c *ClassifierConfig) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendHuggingFace, BackendOpenAI, BackendClaude, BackendNoop:
	default:
		errs = append(errs, fmt.Errorf("SENTIMENT_BACKEND must be one of huggingface, openai, claude, noop; got %q", c.Backend))
	}
	if c.Backend == BackendHuggingFace && c.HuggingFaceModel == "" {
		errs = append(errs, errors.New("HUGGINGFACE_MODEL cannot be empty"))
	}
	if err := envconfig.ValidateDurationRange(c.Timeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("CLASSIFIER_TIMEOUT: %w", err))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("CLASSIFIER_RPS cannot be negative, got %v", c.RequestsPerSecond))
	}
	if c.Burst < 1 {
		errs = append(errs, fmt.Errorf("CLASSIFIER_BURST must be positive, got %d", c.Burst))
	}
	if c.Concurrency < 1 || c.Concurrency > 32 {
		errs = append(errs, fmt.Errorf("CLASSIFIER_CONCURRENCY must be between 1 and 32, got %d", c.Concurrency))
	}
	if c.BatchSize < 1 || c.BatchSize > 64 {
		errs = append(errs, fmt.Errorf("CLASSIFIER_BATCH_SIZE must be between 1 and 64, got %d", c.BatchSize))
	}

	return errors.Join(errs...)
}
