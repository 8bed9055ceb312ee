package scoring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadscore/internal/intent"
	"github.com/sells-group/leadscore/internal/model"
)

// stubClassifier returns a fixed classification, optionally after a
// per-lead delay to exercise completion-order independence.
type stubClassifier struct {
	intent    model.Intent
	reasoning string
	delays    map[string]time.Duration // lead name -> latency
}

func (s *stubClassifier) Analyze(ctx context.Context, lead model.Lead, _ model.Offer) intent.Classification {
	if d, ok := s.delays[lead.Name]; ok {
		select {
		case <-ctx.Done():
		case <-time.After(d):
		}
	}
	return intent.Classification{Intent: s.intent, Reasoning: s.reasoning}
}

func completeLead() model.Lead {
	return model.Lead{
		Name: "Ava Patel", Role: "CEO", Company: "FlowMetrics",
		Industry: "software", Location: "SF", LinkedInBio: "bio",
	}
}

func softwareOffer() model.Offer {
	return model.Offer{
		Name:          "AI Outreach Automation",
		ValueProps:    []string{"automation"},
		IdealUseCases: []string{"software"},
	}
}

func TestScoreLead_PerfectLeadHighIntent(t *testing.T) {
	e := NewEngine(&stubClassifier{intent: model.IntentHigh, reasoning: "perfect ICP"})

	got := e.ScoreLead(context.Background(), completeLead(), softwareOffer())

	// Rule: 20 role + 20 industry + 10 completeness = 50. AI: high = 50.
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, model.IntentHigh, got.Intent)
	assert.Equal(t, "Rule: Role: 20pts | Industry: 20pts | Completeness: 10pts. AI: perfect ICP", got.Reasoning)
}

func TestScoreLead_NoClassifierConservativeFallback(t *testing.T) {
	e := NewEngine(nil)

	lead := model.Lead{Name: "Joe", Role: "Intern", Company: "Acme", Industry: "agriculture"}
	got := e.ScoreLead(context.Background(), lead, softwareOffer())

	// Rule: 0 role + 0 industry + 0 completeness. AI fallback: 10.
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, model.IntentLow, got.Intent)
	assert.Contains(t, got.Reasoning, failedAIReasoning)
}

func TestScoreLead_IntentPointMapping(t *testing.T) {
	tests := []struct {
		intent model.Intent
		want   int
	}{
		{model.IntentHigh, 50},
		{model.IntentMedium, 30},
		{model.IntentLow, 10},
	}

	lead := model.Lead{Name: "Joe", Role: "Intern", Company: "Acme", Industry: "farming"}
	for _, tt := range tests {
		e := NewEngine(&stubClassifier{intent: tt.intent, reasoning: "r"})
		got := e.ScoreLead(context.Background(), lead, softwareOffer())
		assert.Equal(t, tt.want, got.Score, "intent %s", tt.intent)
	}
}

func TestScoreLead_BoundedComponents(t *testing.T) {
	e := NewEngine(&stubClassifier{intent: model.IntentHigh, reasoning: "r"})

	leads := []model.Lead{
		completeLead(),
		{Name: "Joe", Role: "Intern", Company: "Acme"},
		{Name: "Kim", Role: "Senior Director", Company: "Shop", Industry: "retail"},
	}
	for _, lead := range leads {
		got := e.ScoreLead(context.Background(), lead, softwareOffer())
		assert.GreaterOrEqual(t, got.Score, 0)
		assert.LessOrEqual(t, got.Score, 100)
	}
}

func TestScoreLeads_PreservesOrderUnderVariableLatency(t *testing.T) {
	// The first lead is the slowest; results must still index-match input.
	leads := make([]model.Lead, 6)
	delays := make(map[string]time.Duration, len(leads))
	for i := range leads {
		name := fmt.Sprintf("lead-%d", i)
		leads[i] = model.Lead{Name: name, Role: "CEO", Company: "Acme"}
		delays[name] = time.Duration(len(leads)-i) * 10 * time.Millisecond
	}

	e := NewEngine(
		&stubClassifier{intent: model.IntentLow, reasoning: "r", delays: delays},
		WithChunkSize(6),
	)

	results := e.ScoreLeads(context.Background(), leads, softwareOffer())

	assert.Len(t, results, len(leads))
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("lead-%d", i), r.Name)
	}
}

func TestScoreLeads_ChunksWholeList(t *testing.T) {
	leads := make([]model.Lead, 23)
	for i := range leads {
		leads[i] = model.Lead{Name: fmt.Sprintf("lead-%d", i), Role: "Manager", Company: "Acme"}
	}

	e := NewEngine(
		&stubClassifier{intent: model.IntentMedium, reasoning: "r"},
		WithChunkSize(10),
		WithPacer(nil),
	)

	results := e.ScoreLeads(context.Background(), leads, softwareOffer())

	assert.Len(t, results, 23)
	for i, r := range results {
		assert.Equal(t, leads[i].Name, r.Name)
		assert.NotZero(t, r.Score)
	}
}

func TestScoreLeads_Empty(t *testing.T) {
	e := NewEngine(nil)
	results := e.ScoreLeads(context.Background(), nil, softwareOffer())
	assert.Empty(t, results)
}
