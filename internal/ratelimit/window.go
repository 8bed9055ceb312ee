// Package ratelimit provides per-provider sliding-window admission control.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Window is the trailing interval over which calls are counted.
const Window = time.Minute

// Limiter admits calls per provider within a sliding window. Each provider
// has an independent ceiling; blocking on one provider never delays another.
type Limiter struct {
	mu       sync.Mutex
	ceilings map[string]int
	calls    map[string][]time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewLimiter creates a Limiter with per-provider ceilings (max admitted calls
// per trailing window). Providers without an entry are admitted freely.
func NewLimiter(ceilings map[string]int) *Limiter {
	return &Limiter{
		ceilings: ceilings,
		calls:    make(map[string][]time.Time),
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Acquire blocks until a call to the provider is admissible, then records it.
// When the window is full it waits until the oldest recorded call exits the
// window. Returns early with the context error on cancellation.
func (l *Limiter) Acquire(ctx context.Context, provider string) error {
	for {
		l.mu.Lock()
		now := l.now()
		recent := l.prune(provider, now)

		ceiling, limited := l.ceilings[provider]
		if !limited || len(recent) < ceiling {
			l.calls[provider] = append(recent, now)
			l.mu.Unlock()
			return nil
		}

		wait := Window - now.Sub(recent[0])
		l.mu.Unlock()

		zap.L().Info("rate limit reached, backing off",
			zap.String("provider", provider),
			zap.Duration("wait", wait),
		)
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Remaining reports how many calls the provider may still make in the
// current window without blocking. Unlimited providers report -1.
func (l *Limiter) Remaining(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	ceiling, limited := l.ceilings[provider]
	if !limited {
		return -1
	}
	recent := l.prune(provider, l.now())
	l.calls[provider] = recent
	if n := ceiling - len(recent); n > 0 {
		return n
	}
	return 0
}

// Reset clears recorded calls for a provider.
func (l *Limiter) Reset(provider string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.calls, provider)
}

// prune drops calls older than the window. Caller must hold l.mu.
func (l *Limiter) prune(provider string, now time.Time) []time.Time {
	recent := l.calls[provider][:0:0]
	for _, t := range l.calls[provider] {
		if now.Sub(t) < Window {
			recent = append(recent, t)
		}
	}
	return recent
}
