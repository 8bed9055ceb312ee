package scoring

import (
	"strings"

	"github.com/sells-group/leadscore/internal/model"
)

// Rule scoring weights. The rule component and the AI component each
// contribute at most 50 points.
const (
	MaxRuleScore = 50
	MaxAIScore   = 50

	decisionMakerPoints = 20
	influencerPoints    = 10

	exactIndustryPoints    = 20
	adjacentIndustryPoints = 10

	completeDataPoints = 10

	// fallbackAIPoints is awarded when AI classification is unavailable.
	fallbackAIPoints = 10
)

// intentPoints maps classified intent to its score contribution.
var intentPoints = map[model.Intent]int{
	model.IntentHigh:   50,
	model.IntentMedium: 30,
	model.IntentLow:    10,
}

// decisionMakers are role keywords indicating purchasing authority.
var decisionMakers = []string{
	"ceo", "cto", "cfo", "coo", "founder", "co-founder",
	"president", "vp", "vice president", "director",
	"head of", "chief", "owner", "partner",
}

// influencers are role keywords indicating purchase influence without
// final authority.
var influencers = []string{
	"manager", "lead", "senior", "principal", "supervisor",
	"coordinator", "team lead", "specialist",
}

// industryGroups define related-industry clusters for adjacent matching.
var industryGroups = [][]string{
	{"software", "saas", "technology", "tech", "it", "information technology", "software development"},
	{"fintech", "financial services", "banking", "finance", "payments", "cryptocurrency", "blockchain"},
	{"ecommerce", "e-commerce", "retail", "marketplace", "online retail", "shopping"},
}

// RoleScore scores purchasing authority from the role title. Decision-maker
// keywords are checked before influencer keywords, so a title matching both
// ("Senior Director") scores as a decision maker.
func RoleScore(role string) int {
	lower := strings.ToLower(role)

	for _, kw := range decisionMakers {
		if strings.Contains(lower, kw) {
			return decisionMakerPoints
		}
	}
	for _, kw := range influencers {
		if strings.Contains(lower, kw) {
			return influencerPoints
		}
	}
	return 0
}

// IndustryScore scores the lead's industry against the offer's target use
// cases: exact case-insensitive match, then same related-industry group,
// else zero.
func IndustryScore(leadIndustry string, targets []string) int {
	lead := strings.ToLower(strings.TrimSpace(leadIndustry))

	for _, t := range targets {
		if lead == strings.ToLower(strings.TrimSpace(t)) {
			return exactIndustryPoints
		}
	}
	for _, t := range targets {
		if industriesRelated(lead, strings.ToLower(t)) {
			return adjacentIndustryPoints
		}
	}
	return 0
}

func industriesRelated(a, b string) bool {
	for _, group := range industryGroups {
		if containsAny(a, group) && containsAny(b, group) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// CompletenessScore awards full points only when every lead field is
// populated.
func CompletenessScore(lead model.Lead) int {
	if lead.Complete() {
		return completeDataPoints
	}
	return 0
}
