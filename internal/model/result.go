package model

import "strings"

// Intent is the classified buying-interest level for a lead.
type Intent string

const (
	IntentHigh   Intent = "High"
	IntentMedium Intent = "Medium"
	IntentLow    Intent = "Low"
)

// ParseIntent canonicalizes a provider-supplied intent string.
// Anything outside the three known levels maps to Low.
func ParseIntent(s string) Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return IntentHigh
	case "medium":
		return IntentMedium
	default:
		return IntentLow
	}
}

// ScoringResult is the immutable outcome of scoring one lead against an offer.
type ScoringResult struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Intent    Intent `json:"intent"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}
