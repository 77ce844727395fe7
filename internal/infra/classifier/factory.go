package classifier

import (
	"log/slog"

	"crypto-mood/internal/config"
)

// FromConfig builds the configured backend. A backend whose credential is
// missing degrades to Unavailable instead of failing startup.
func FromConfig(cfg config.ClassifierConfig, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	opts := Options{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Concurrency:       cfg.Concurrency,
		BatchSize:         cfg.BatchSize,
		Logger:            logger,
	}

	if cfg.Backend != config.BackendNoop && cfg.Credential() == "" {
		logger.Warn("sentiment backend credential not configured, sentiment will be UNKNOWN",
			slog.String("backend", cfg.Backend))
		return Unavailable(cfg.Backend, logger)
	}

	var scorer Scorer
	switch cfg.Backend {
	case config.BackendHuggingFace:
		scorer = NewHuggingFace(cfg.HuggingFaceToken, cfg.HuggingFaceURL, cfg.HuggingFaceModel, nil, opts)
	case config.BackendOpenAI:
		scorer = NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, "", nil, opts)
	case config.BackendClaude:
		scorer = NewClaude(cfg.AnthropicKey, cfg.ClaudeModel, "", nil, opts)
	default:
		scorer = NewNoop()
	}

	logger.Info("sentiment classifier initialized",
		slog.String("backend", scorer.Name()),
		slog.Int("batch_size", cfg.BatchSize),
		slog.Float64("requests_per_second", cfg.RequestsPerSecond))
	return New(scorer, cfg.Timeout, logger)
}
