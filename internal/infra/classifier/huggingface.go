package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crypto-mood/internal/resilience/retry"
)

// HuggingFace scores texts with a text-classification model on the Hugging
// Face Inference API.
type HuggingFace struct {
	remote
	client   *http.Client
	endpoint string
	token    string
}

// NewHuggingFace creates a backend for model served under baseURL
// (for example https://api-inference.huggingface.co/models).
func NewHuggingFace(token, baseURL, model string, client *http.Client, opts Options) *HuggingFace {
	if client == nil {
		client = &http.Client{}
	}
	return &HuggingFace{
		remote:   newRemote("huggingface", opts),
		client:   client,
		endpoint: strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(model, "/"),
		token:    token,
	}
}

// Score implements Scorer.
func (h *HuggingFace) Score(ctx context.Context, texts []string) ([]string, error) {
	return h.scoreChunks(ctx, texts, h.send)
}

type hfRequest struct {
	Inputs []string `json:"inputs"`
}

type hfPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

func (h *HuggingFace) send(ctx context.Context, texts []string) ([]string, error) {
	body, err := json.Marshal(hfRequest{Inputs: texts})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		_ = json.Unmarshal(payload, &apiErr)
		httpErr := retry.NewHTTPError(resp, apiErr.Error)
		// A loading model reports its own estimate in the body.
		if httpErr.RetryAfter == 0 && apiErr.EstimatedTime > 0 {
			httpErr.RetryAfter = time.Duration(apiErr.EstimatedTime * float64(time.Second))
		}
		return nil, httpErr
	}

	return parseHFLabels(payload, len(texts))
}

// parseHFLabels accepts both response shapes of the text-classification task:
// a list of prediction lists (one per input) or a flat prediction list, which
// is either one prediction per input or, for a single input, its scores.
// Items that cannot be read get an empty label.
func parseHFLabels(payload []byte, n int) ([]string, error) {
	labels := make([]string, n)

	var nested [][]hfPrediction
	if err := json.Unmarshal(payload, &nested); err == nil {
		for i := 0; i < n && i < len(nested); i++ {
			labels[i] = topLabel(nested[i])
		}
		return labels, nil
	}

	var flat []hfPrediction
	if err := json.Unmarshal(payload, &flat); err != nil {
		return nil, fmt.Errorf("decode huggingface response: %w", err)
	}
	if n == 1 {
		labels[0] = topLabel(flat)
		return labels, nil
	}
	for i := 0; i < n && i < len(flat); i++ {
		labels[i] = flat[i].Label
	}
	return labels, nil
}

func topLabel(preds []hfPrediction) string {
	best := -1.0
	label := ""
	for _, p := range preds {
		if p.Label != "" && p.Score > best {
			best = p.Score
			label = p.Label
		}
	}
	return label
}
