// Package intent classifies lead buying intent through an ordered chain of
// AI providers with rate limiting, cost tracking, and conservative fallback.
package intent

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/intent/provider"
	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/ratelimit"
	"github.com/sells-group/leadscore/internal/usage"
)

// ErrNoProviders is returned by New when the provider list is empty.
var ErrNoProviders = eris.New("intent: no providers configured")

// FallbackReasoning is returned when every provider fails.
const FallbackReasoning = "AI services unavailable - conservative scoring applied"

const defaultTimeout = 15 * time.Second

// Classifier tries providers in priority order (cheapest first), returning
// the first successful classification. It never fails: exhausting all
// providers yields a conservative Low result and a failure counter bump.
type Classifier struct {
	providers []provider.Provider
	limiter   *ratelimit.Limiter
	tracker   *usage.Tracker
	timeout   time.Duration
}

// Option configures the Classifier.
type Option func(*Classifier)

// WithTimeout sets the per-provider request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Classifier over the given providers, in fallback order.
// Fails when no providers are supplied.
func New(providers []provider.Provider, limiter *ratelimit.Limiter, tracker *usage.Tracker, opts ...Option) (*Classifier, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	c := &Classifier{
		providers: providers,
		limiter:   limiter,
		tracker:   tracker,
		timeout:   defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	zap.L().Info("intent classifier initialized", zap.Strings("providers", names))

	return c, nil
}

// Analyze classifies the lead's buying intent against the offer. Each
// provider attempt acquires rate-limit admission, runs under the configured
// timeout, and on any failure advances to the next provider. Analyze never
// returns an error; when all providers fail it returns the conservative
// fallback and records the exhaustion.
func (c *Classifier) Analyze(ctx context.Context, lead model.Lead, offer model.Offer) Classification {
	prompt := BuildPrompt(lead, offer)

	for _, p := range c.providers {
		start := time.Now()

		if err := c.limiter.Acquire(ctx, p.Name()); err != nil {
			zap.L().Warn("intent: rate-limit wait aborted",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}

		reply, err := c.classifyOnce(ctx, p, prompt)
		if err != nil {
			zap.L().Warn("intent: provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("lead", lead.Name),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			continue
		}

		c.tracker.Record(p.Name(), p.Model(), reply.InputTokens, reply.OutputTokens)

		result := ParseReply(reply.Text)
		zap.L().Debug("intent: classified",
			zap.String("provider", p.Name()),
			zap.String("lead", lead.Name),
			zap.String("intent", string(result.Intent)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return result
	}

	c.tracker.RecordFailure()
	zap.L().Error("intent: all providers failed", zap.String("lead", lead.Name))

	return Classification{
		Intent:    model.IntentLow,
		Reasoning: FallbackReasoning,
	}
}

// classifyOnce runs a single provider call under the request timeout.
func (c *Classifier) classifyOnce(ctx context.Context, p provider.Provider, prompt string) (*provider.Reply, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := p.Classify(callCtx, prompt)
	if err != nil {
		return nil, err
	}
	if reply == nil || reply.Text == "" {
		return nil, eris.Errorf("intent: %s returned empty reply", p.Name())
	}
	return reply, nil
}

// Providers returns the configured provider names in fallback order.
func (c *Classifier) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}
