package utils

import (
	"math/rand"
	"time"
)

// BackoffPolicy computes the delay before retry attempt n as
// min(BaseDelay×n, MaxDelay), with up to Jitter of random slack on top.
type BackoffPolicy struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Jitter    time.Duration

	// Sleep is swappable so tests can run with a zero-delay policy.
	Sleep func(time.Duration)
}

// DelayFor returns the delay before retrying after the given 1-based attempt.
func (p BackoffPolicy) DelayFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay * time.Duration(attempt)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return d
}

// Pause sleeps for DelayFor(attempt).
func (p BackoffPolicy) Pause(attempt int) {
	p.sleep(p.DelayFor(attempt))
}

func (p BackoffPolicy) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Pacer produces randomized politeness delays between page interactions to
// avoid hammering the target at machine speed.
type Pacer struct {
	Min time.Duration
	Max time.Duration

	// Sleep is swappable so tests can run without real delays.
	Sleep func(time.Duration)
}

// Pause sleeps for a uniformly random duration in [Min, Max].
func (p Pacer) Pause() {
	d := p.Min
	if p.Max > p.Min {
		d += time.Duration(rand.Int63n(int64(p.Max - p.Min)))
	}
	if d <= 0 {
		return
	}
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}
