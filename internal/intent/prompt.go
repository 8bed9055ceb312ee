package intent

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadscore/internal/model"
)

const (
	// maxBioChars truncates the lead bio to bound prompt cost.
	maxBioChars = 200
	// maxUseCases caps how many offer use cases are included.
	maxUseCases = 2
)

// BuildPrompt constructs a cost-bounded classification prompt. The bio is
// truncated and only the leading use cases are included; the model is
// instructed to reply with strict JSON.
func BuildPrompt(lead model.Lead, offer model.Offer) string {
	bio := lead.LinkedInBio
	if len(bio) > maxBioChars {
		bio = bio[:maxBioChars]
	}

	useCases := offer.IdealUseCases
	if len(useCases) > maxUseCases {
		useCases = useCases[:maxUseCases]
	}

	return fmt.Sprintf(`Analyze buying intent: High/Medium/Low

Product: %s
Use cases: %s

Prospect: %s, %s at %s
Industry: %s
Bio: %s

JSON only: {"intent": "High|Medium|Low", "reasoning": "Brief explanation"}`,
		offer.Name,
		strings.Join(useCases, ", "),
		lead.Name, lead.Role, lead.Company,
		lead.Industry,
		bio,
	)
}
