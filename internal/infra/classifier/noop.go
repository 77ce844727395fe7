package classifier

import "context"

// Noop is the backend for deployments without a sentiment model. It labels
// every text UNKNOWN.
type Noop struct{}

// NewNoop creates a Noop backend.
func NewNoop() *Noop {
	return &Noop{}
}

// Name implements Scorer.
func (n *Noop) Name() string { return "noop" }

// Score implements Scorer.
func (n *Noop) Score(_ context.Context, texts []string) ([]string, error) {
	return make([]string, len(texts)), nil
}
