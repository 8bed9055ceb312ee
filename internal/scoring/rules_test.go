package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadscore/internal/model"
)

func TestRoleScore_DecisionMakers(t *testing.T) {
	for _, role := range []string{
		"CEO", "Chief Technology Officer", "VP of Sales",
		"Head of Growth", "Co-Founder", "Managing Director", "Owner",
	} {
		assert.Equal(t, 20, RoleScore(role), "role %q", role)
	}
}

func TestRoleScore_Influencers(t *testing.T) {
	for _, role := range []string{
		"Marketing Manager", "Senior Engineer", "Principal Analyst",
		"Team Lead", "Operations Specialist",
	} {
		assert.Equal(t, 10, RoleScore(role), "role %q", role)
	}
}

func TestRoleScore_DecisionMakerBeatsInfluencer(t *testing.T) {
	// Matches both "senior" (influencer) and "director" (decision maker);
	// decision maker wins.
	assert.Equal(t, 20, RoleScore("Senior Director"))
}

func TestRoleScore_Unmatched(t *testing.T) {
	assert.Equal(t, 0, RoleScore("Intern"))
	assert.Equal(t, 0, RoleScore(""))
}

func TestIndustryScore_ExactMatch(t *testing.T) {
	assert.Equal(t, 20, IndustryScore("software", []string{"software"}))
	assert.Equal(t, 20, IndustryScore("Software", []string{"SOFTWARE"}))
	assert.Equal(t, 20, IndustryScore("fintech", []string{"retail", "fintech"}))
}

func TestIndustryScore_RelatedGroup(t *testing.T) {
	assert.Equal(t, 10, IndustryScore("saas", []string{"software"}))
	assert.Equal(t, 10, IndustryScore("banking", []string{"fintech"}))
	assert.Equal(t, 10, IndustryScore("online retail", []string{"e-commerce"}))
}

func TestIndustryScore_Unrelated(t *testing.T) {
	assert.Equal(t, 0, IndustryScore("agriculture", []string{"software"}))
	assert.Equal(t, 0, IndustryScore("", []string{"software"}))
}

func TestCompletenessScore(t *testing.T) {
	complete := model.Lead{
		Name: "A", Role: "B", Company: "C",
		Industry: "D", Location: "E", LinkedInBio: "F",
	}
	assert.Equal(t, 10, CompletenessScore(complete))

	incomplete := complete
	incomplete.LinkedInBio = ""
	assert.Equal(t, 0, CompletenessScore(incomplete))

	whitespace := complete
	whitespace.Industry = "   "
	assert.Equal(t, 0, CompletenessScore(whitespace))
}
