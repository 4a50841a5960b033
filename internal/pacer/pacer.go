// Package pacer provides a single-slot fixed-delay rate gate.
//
// The capture engine and the scoring engine both talk to external parties
// (target sites, the vision model API) that must not be hit back-to-back.
// Rather than sprinkling sleeps at call sites, both engines share this
// abstraction so the pacing policy can later be swapped (e.g. for adaptive
// backoff) without touching the engines.
package pacer

import (
	"context"
	"time"
)

// Pacer is a single-slot token gate with a fixed refill delay.
// The first Wait returns immediately; every subsequent Wait blocks until
// the configured interval has elapsed since the previous Wait returned.
// A Pacer is not safe for concurrent use; the pipeline is sequential and
// each engine owns its own Pacer.
type Pacer struct {
	// interval is the fixed delay enforced between consecutive Waits.
	interval time.Duration

	// last is when the previous Wait returned; zero before the first Wait.
	last time.Time
}

// New creates a Pacer with the given fixed interval.
// A non-positive interval disables pacing entirely.
func New(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the pacing interval has elapsed since the previous
// call, or returns early with the context's error if it is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}

	if !p.last.IsZero() {
		remaining := p.interval - time.Since(p.last)
		if remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	p.last = time.Now()
	return nil
}

// Interval returns the configured pacing interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
