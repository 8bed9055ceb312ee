// Package usage tracks per-provider AI call volume and estimated spend.
package usage

import (
	"sync"

	"github.com/sells-group/leadscore/internal/cost"
)

// ProviderStats holds cumulative counters for a single provider.
type ProviderStats struct {
	Calls            int     `json:"calls"`
	Tokens           int     `json:"tokens"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

// Stats is an immutable snapshot of tracker state.
type Stats struct {
	Providers map[string]ProviderStats `json:"providers"`
	Failures  int                      `json:"failures"`
}

// Tracker accumulates call, token, and cost counters per provider, plus a
// global counter of classifications where every provider failed. Instances
// are safe for concurrent use and live for the process lifetime; the
// composition root owns the single shared instance.
type Tracker struct {
	mu        sync.Mutex
	providers map[string]*ProviderStats
	failures  int
	calc      *cost.Calculator
}

// NewTracker creates a Tracker using calc for cost estimation. A nil calc
// disables cost accounting.
func NewTracker(calc *cost.Calculator) *Tracker {
	return &Tracker{
		providers: make(map[string]*ProviderStats),
		calc:      calc,
	}
}

// Record logs one completed call against a provider.
func (t *Tracker) Record(provider, model string, inputTokens, outputTokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.providers[provider]
	if !ok {
		s = &ProviderStats{}
		t.providers[provider] = s
	}
	s.Calls++
	s.Tokens += inputTokens + outputTokens
	if t.calc != nil {
		s.EstimatedCostUSD += t.calc.Estimate(provider, model, inputTokens, outputTokens)
	}
}

// RecordFailure logs one fully-exhausted classification attempt. It is
// incremented once per analysis where all providers failed, not once per
// failed provider.
func (t *Tracker) RecordFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures++
}

// Snapshot returns a deep copy of the current counters.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := Stats{
		Providers: make(map[string]ProviderStats, len(t.providers)),
		Failures:  t.failures,
	}
	for name, s := range t.providers {
		out.Providers[name] = *s
	}
	return out
}

// Reset clears all counters. Intended for test isolation and the
// usage-reset API endpoint.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.providers = make(map[string]*ProviderStats)
	t.failures = 0
}
