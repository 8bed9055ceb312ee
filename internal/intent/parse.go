package intent

import (
	"encoding/json"
	"strings"

	"github.com/sells-group/leadscore/internal/model"
)

// Classification is the parsed outcome of a provider reply.
type Classification struct {
	Intent    model.Intent
	Reasoning string
}

type replyJSON struct {
	Intent    string `json:"intent"`
	Reasoning string `json:"reasoning"`
}

// ParseReply extracts (intent, reasoning) from raw provider output. Strict
// JSON is attempted first; malformed output falls back to keyword scanning.
// The returned reasoning is always non-empty and intents outside the
// canonical set coerce to Low.
func ParseReply(text string) Classification {
	body := stripCodeFence(strings.TrimSpace(text))

	if strings.HasPrefix(body, "{") {
		var r replyJSON
		if err := json.Unmarshal([]byte(body), &r); err == nil {
			reasoning := strings.TrimSpace(r.Reasoning)
			if reasoning == "" {
				reasoning = "Analysis completed"
			}
			return Classification{
				Intent:    model.ParseIntent(r.Intent),
				Reasoning: reasoning,
			}
		}
	}

	return parseText(body)
}

// parseText scans non-JSON output for intent keywords, high before medium
// before low, and uses the first sentence as reasoning.
func parseText(text string) Classification {
	lower := strings.ToLower(text)

	intent := model.IntentLow
	switch {
	case strings.Contains(lower, "high"):
		intent = model.IntentHigh
	case strings.Contains(lower, "medium"):
		intent = model.IntentMedium
	}

	reasoning := "AI analysis completed"
	if first, _, _ := strings.Cut(text, "."); strings.TrimSpace(first) != "" {
		reasoning = strings.TrimSpace(first)
	}

	return Classification{Intent: intent, Reasoning: reasoning}
}

// stripCodeFence unwraps a ```json ... ``` fenced block, which several
// providers emit around the requested JSON.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
