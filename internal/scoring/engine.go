// Package scoring combines deterministic rule scores with AI intent
// classification into bounded lead scores.
package scoring

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadscore/internal/intent"
	"github.com/sells-group/leadscore/internal/model"
)

// failedAIReasoning is used when the classifier is missing or panics.
const failedAIReasoning = "AI analysis failed - conservative scoring applied"

// defaultChunkSize bounds how many leads are classified concurrently.
const defaultChunkSize = 10

// Classifier is the AI dependency of the engine. intent.Classifier
// satisfies it; tests supply stubs.
type Classifier interface {
	Analyze(ctx context.Context, lead model.Lead, offer model.Offer) intent.Classification
}

// Engine scores leads against an offer. A nil classifier degrades every
// lead to the conservative AI fallback rather than failing.
type Engine struct {
	classifier Classifier
	chunkSize  int
	pacer      *rate.Limiter
}

// Option configures the Engine.
type Option func(*Engine)

// WithChunkSize overrides how many leads are scored concurrently per chunk.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithPacer sets the limiter waited on between chunks, bounding the
// aggregate provider call rate across a batch.
func WithPacer(l *rate.Limiter) Option {
	return func(e *Engine) {
		e.pacer = l
	}
}

// NewEngine creates an Engine. The default pacer admits ten chunks per
// second, mirroring the short inter-chunk pause the AI providers expect.
func NewEngine(classifier Classifier, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		chunkSize:  defaultChunkSize,
		pacer:      rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ScoreLeads scores every lead against the offer. Leads are processed in
// fixed-size chunks; within a chunk all leads run concurrently, and the
// pacer is waited on between chunks. The result slice index-matches the
// input regardless of per-lead completion order. AI failures never abort
// the batch.
func (e *Engine) ScoreLeads(ctx context.Context, leads []model.Lead, offer model.Offer) []model.ScoringResult {
	start := time.Now()
	results := make([]model.ScoringResult, len(leads))

	for chunkStart := 0; chunkStart < len(leads); chunkStart += e.chunkSize {
		chunkEnd := min(chunkStart+e.chunkSize, len(leads))

		g, gCtx := errgroup.WithContext(ctx)
		for i := chunkStart; i < chunkEnd; i++ {
			g.Go(func() error {
				results[i] = e.ScoreLead(gCtx, leads[i], offer)
				return nil
			})
		}
		_ = g.Wait()

		if chunkEnd < len(leads) && e.pacer != nil {
			if err := e.pacer.Wait(ctx); err != nil {
				// Context cancelled mid-batch: score the rest without
				// pacing; per-lead calls will fail fast and fall back.
				zap.L().Warn("scoring: pacer wait aborted", zap.Error(err))
			}
		}
	}

	zap.L().Info("scoring complete",
		zap.Int("leads", len(leads)),
		zap.String("offer", offer.Name),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results
}

// ScoreLead scores a single lead: rule component (≤50) plus AI component
// (≤50), capped at 100.
func (e *Engine) ScoreLead(ctx context.Context, lead model.Lead, offer model.Offer) model.ScoringResult {
	ruleScore, ruleBreakdown := e.ruleScore(lead, offer)
	aiScore, aiReasoning, leadIntent := e.aiScore(ctx, lead, offer)

	total := min(ruleScore+aiScore, 100)

	return model.ScoringResult{
		Name:      lead.Name,
		Role:      lead.Role,
		Company:   lead.Company,
		Intent:    leadIntent,
		Score:     total,
		Reasoning: fmt.Sprintf("Rule: %s. AI: %s", ruleBreakdown, aiReasoning),
	}
}

// ruleScore computes the deterministic component with a transparent
// breakdown string.
func (e *Engine) ruleScore(lead model.Lead, offer model.Offer) (int, string) {
	role := RoleScore(lead.Role)
	industry := IndustryScore(lead.Industry, offer.IdealUseCases)
	completeness := CompletenessScore(lead)

	score := min(role+industry+completeness, MaxRuleScore)
	breakdown := fmt.Sprintf("Role: %dpts | Industry: %dpts | Completeness: %dpts",
		role, industry, completeness)

	return score, breakdown
}

// aiScore maps the classified intent to points. Missing classifier degrades
// to the conservative fallback; classification itself never fails.
func (e *Engine) aiScore(ctx context.Context, lead model.Lead, offer model.Offer) (int, string, model.Intent) {
	if e.classifier == nil {
		return fallbackAIPoints, failedAIReasoning, model.IntentLow
	}

	c := e.classifier.Analyze(ctx, lead, offer)

	points, ok := intentPoints[c.Intent]
	if !ok {
		points = fallbackAIPoints
	}
	return points, c.Reasoning, c.Intent
}
