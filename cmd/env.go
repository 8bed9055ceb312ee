package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/cost"
	"github.com/sells-group/leadscore/internal/intent"
	"github.com/sells-group/leadscore/internal/intent/provider"
	"github.com/sells-group/leadscore/internal/ratelimit"
	"github.com/sells-group/leadscore/internal/scoring"
	"github.com/sells-group/leadscore/internal/usage"
)

// scoringEnv wires the classifier stack and engine for a command.
type scoringEnv struct {
	Engine  *scoring.Engine
	Tracker *usage.Tracker
	Limiter *ratelimit.Limiter
}

// initScoring builds providers from configured credentials (in fallback
// order: gemini, openai, anthropic), the rate limiter, usage tracker, and
// engine. Providers without a key are skipped; at least one is required.
func initScoring(ctx context.Context) (*scoringEnv, error) {
	var providers []provider.Provider

	if cfg.Gemini.Key != "" {
		p, err := provider.NewGemini(ctx, cfg.Gemini.Key, cfg.Gemini.Model)
		if err != nil {
			zap.L().Warn("gemini provider setup failed", zap.Error(err))
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.OpenAI.Key != "" {
		p, err := provider.NewOpenAI(cfg.OpenAI.Key, cfg.OpenAI.Model)
		if err != nil {
			zap.L().Warn("openai provider setup failed", zap.Error(err))
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.Anthropic.Key != "" {
		p, err := provider.NewAnthropic(cfg.Anthropic.Key, cfg.Anthropic.Model)
		if err != nil {
			zap.L().Warn("anthropic provider setup failed", zap.Error(err))
		} else {
			providers = append(providers, p)
		}
	}

	// With fallback disabled only the primary provider is attempted.
	if !cfg.AI.FallbackEnabled && len(providers) > 1 {
		providers = providers[:1]
	}

	if len(providers) == 0 {
		return nil, eris.New("no AI providers configured: set LEADSCORE_GEMINI_KEY, LEADSCORE_OPENAI_KEY, or LEADSCORE_ANTHROPIC_KEY")
	}

	limiter := ratelimit.NewLimiter(cfg.RateCeilings())
	tracker := usage.NewTracker(cost.NewCalculator(cfg.Pricing))

	classifier, err := intent.New(providers, limiter, tracker,
		intent.WithTimeout(cfg.AI.Timeout()),
	)
	if err != nil {
		return nil, err
	}

	engine := scoring.NewEngine(classifier,
		scoring.WithChunkSize(cfg.AI.ChunkSize),
	)

	return &scoringEnv{
		Engine:  engine,
		Tracker: tracker,
		Limiter: limiter,
	}, nil
}

// logUsage emits an end-of-run usage and cost summary.
func logUsage(tracker *usage.Tracker) {
	stats := tracker.Snapshot()
	for name, s := range stats.Providers {
		zap.L().Info("provider usage",
			zap.String("provider", name),
			zap.Int("calls", s.Calls),
			zap.Int("tokens", s.Tokens),
			zap.Float64("estimated_cost_usd", s.EstimatedCostUSD),
		)
	}
	if stats.Failures > 0 {
		zap.L().Warn("classification fallbacks", zap.Int("failures", stats.Failures))
	}
}
