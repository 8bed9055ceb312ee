// Package provider defines the interface and implementations for AI
// intent-classification providers.
package provider

import "context"

// Reply is the raw output of a single classification call.
type Reply struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Provider is a remote classification capability. Implementations wrap one
// vendor SDK each; callers are unaware of provider-specific request and
// response shapes. The caller bounds each call with a context deadline.
type Provider interface {
	// Name returns the provider identifier used for rate limiting and
	// usage accounting (e.g. "gemini", "openai", "anthropic").
	Name() string
	// Model returns the configured model identifier.
	Model() string
	// Classify sends the prompt and returns the raw completion text.
	Classify(ctx context.Context, prompt string) (*Reply, error)
}

const (
	// classifyMaxTokens caps completion length; the expected JSON reply is
	// well under this.
	classifyMaxTokens = 200
	// classifyTemperature keeps classifications near-deterministic.
	classifyTemperature = 0.1
)

// estimateTokens approximates a token count from text length when the
// provider does not report usage. Four characters per token is the usual
// rule of thumb for English prose.
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}
