package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"crypto-mood/internal/resilience/retry"

	"github.com/sashabaranov/go-openai"
)

// OpenAI labels headlines with an OpenAI chat model.
type OpenAI struct {
	remote
	client *openai.Client
	model  string
}

// NewOpenAI creates the OpenAI backend. baseURL and client may be empty to
// use the public endpoint and the default HTTP client.
func NewOpenAI(apiKey, model, baseURL string, client *http.Client, opts Options) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &OpenAI{
		remote: newRemote("openai", opts),
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Score implements Scorer.
func (o *OpenAI) Score(ctx context.Context, texts []string) ([]string, error) {
	return o.scoreChunks(ctx, texts, o.send)
}

func (o *OpenAI) send(ctx context.Context, texts []string) ([]string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: chatPrompt(texts)},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusServiceUnavailable {
			return nil, &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai api returned no choices")
	}
	return parseChatLabels(resp.Choices[0].Message.Content, len(texts))
}
