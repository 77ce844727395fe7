package classifier

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"crypto-mood/internal/utils/text"
)

const chatSystemPrompt = `You label the market sentiment of cryptocurrency news headlines.
For each numbered headline answer "positive", "negative" or "neutral" from the
point of view of a crypto investor. Reply with only a JSON array of strings,
one label per headline, in the same order.`

// chatPrompt numbers the headlines, one per line.
func chatPrompt(texts []string) string {
	var b strings.Builder
	for i, t := range texts {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(strings.ReplaceAll(t, "\n", " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// parseChatLabels extracts the JSON array from a model reply. Non-string
// elements and missing positions get an empty label.
func parseChatLabels(reply string, n int) ([]string, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no label array in reply %q", text.Truncate(reply, 80))
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode label array: %w", err)
	}

	labels := make([]string, n)
	for i := 0; i < n && i < len(raw); i++ {
		var s string
		if json.Unmarshal(raw[i], &s) == nil {
			labels[i] = s
		}
	}
	return labels, nil
}

