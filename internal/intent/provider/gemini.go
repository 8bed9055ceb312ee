package provider

import (
	"context"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// GeminiProvider classifies via the Google Gemini API. It is configured
// first in the fallback order because its free tier makes it the cheapest
// option.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, eris.New("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string  { return "gemini" }
func (p *GeminiProvider) Model() string { return p.model }

func (p *GeminiProvider) Classify(ctx context.Context, prompt string) (*Reply, error) {
	temp := float32(classifyTemperature)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: classifyMaxTokens,
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: generate content")
	}

	text := result.Text()
	if text == "" {
		return nil, eris.New("gemini: empty response")
	}

	reply := &Reply{
		Text:         text,
		InputTokens:  estimateTokens(prompt),
		OutputTokens: estimateTokens(text),
	}
	if result.UsageMetadata != nil {
		reply.InputTokens = int(result.UsageMetadata.PromptTokenCount)
		reply.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
	}

	return reply, nil
}
