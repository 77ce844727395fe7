package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"crypto-mood/internal/resilience/retry"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Claude labels headlines with an Anthropic Claude model.
type Claude struct {
	remote
	client anthropic.Client
	model  string
}

// NewClaude creates the Claude backend. The SDK's own retries are disabled;
// retries go through the shared warm-up policy.
func NewClaude(apiKey, model, baseURL string, client *http.Client, opts Options) *Claude {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if client != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(client))
	}
	return &Claude{
		remote: newRemote("claude", opts),
		client: anthropic.NewClient(reqOpts...),
		model:  model,
	}
}

// Score implements Scorer.
func (c *Claude) Score(ctx context.Context, texts []string) ([]string, error) {
	return c.scoreChunks(ctx, texts, c.send)
}

func (c *Claude) send(ctx context.Context, texts []string) ([]string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(64 + 8*len(texts)),
		System:    []anthropic.TextBlockParam{{Text: chatSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(chatPrompt(texts))),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable {
			return nil, &retry.HTTPError{StatusCode: apiErr.StatusCode, Message: "claude api unavailable"}
		}
		return nil, fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return nil, errors.New("claude api returned empty response")
	}
	block, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return nil, errors.New("claude api returned unexpected response type")
	}
	return parseChatLabels(block.Text, len(texts))
}
