// Package cost computes estimated spend for AI provider usage.
package cost

// ModelRate holds per-model token pricing in USD per million tokens.
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Rates maps provider name to its per-model pricing table. Providers absent
// from the table (free tiers) cost nothing.
type Rates map[string]map[string]ModelRate

// Calculator estimates costs from token counts.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Estimate returns the estimated USD cost of a single call. Unknown
// provider/model pairs return 0.
func (c *Calculator) Estimate(provider, model string, inputTokens, outputTokens int) float64 {
	models, ok := c.rates[provider]
	if !ok {
		return 0
	}
	rate, ok := models[model]
	if !ok {
		return 0
	}
	return (float64(inputTokens)/1e6)*rate.Input + (float64(outputTokens)/1e6)*rate.Output
}

// DefaultRates returns the default pricing table. Gemini's free tier carries
// no pricing entry, so its calls estimate to zero.
func DefaultRates() Rates {
	return Rates{
		"openai": {
			"gpt-4o-mini": {Input: 0.15, Output: 0.60},
			"gpt-4o":      {Input: 2.50, Output: 10.00},
		},
		"anthropic": {
			"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
		},
	}
}
