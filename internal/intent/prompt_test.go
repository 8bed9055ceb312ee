package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadscore/internal/model"
)

func TestBuildPrompt_IncludesLeadAndOffer(t *testing.T) {
	lead := model.Lead{
		Name: "Ava Patel", Role: "Head of Growth", Company: "FlowMetrics",
		Industry: "software", Location: "SF", LinkedInBio: "B2B SaaS growth leader",
	}
	offer := model.Offer{
		Name:          "AI Outreach Automation",
		ValueProps:    []string{"automation"},
		IdealUseCases: []string{"B2B SaaS", "fintech"},
	}

	prompt := BuildPrompt(lead, offer)

	assert.Contains(t, prompt, "Ava Patel")
	assert.Contains(t, prompt, "Head of Growth")
	assert.Contains(t, prompt, "FlowMetrics")
	assert.Contains(t, prompt, "AI Outreach Automation")
	assert.Contains(t, prompt, "B2B SaaS, fintech")
	assert.Contains(t, prompt, `"intent"`)
}

func TestBuildPrompt_TruncatesBio(t *testing.T) {
	lead := model.Lead{Name: "A", Role: "B", Company: "C", LinkedInBio: strings.Repeat("x", 500)}
	offer := model.Offer{Name: "P", IdealUseCases: []string{"saas"}}

	prompt := BuildPrompt(lead, offer)

	assert.Contains(t, prompt, strings.Repeat("x", maxBioChars))
	assert.NotContains(t, prompt, strings.Repeat("x", maxBioChars+1))
}

func TestBuildPrompt_CapsUseCases(t *testing.T) {
	lead := model.Lead{Name: "A", Role: "B", Company: "C"}
	offer := model.Offer{
		Name:          "P",
		IdealUseCases: []string{"one", "two", "three", "four"},
	}

	prompt := BuildPrompt(lead, offer)

	assert.Contains(t, prompt, "one, two")
	assert.NotContains(t, prompt, "three")
}
