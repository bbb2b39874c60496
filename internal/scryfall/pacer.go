package scryfall

import (
	"context"
	"time"
)

// pacer schedules catalog requests: a counting semaphore caps the number of
// requests in flight, and every permit-holder pays a flat minimum delay
// after acquiring, before its network call. Holders wait out the delay
// concurrently, so bursts of up to the in-flight cap per delay interval are
// possible; the pacer bounds burst rate, not the smooth global rate.
type pacer struct {
	sem   chan struct{}
	delay time.Duration
}

func newPacer(maxInFlight int, delay time.Duration) *pacer {
	return &pacer{
		sem:   make(chan struct{}, maxInFlight),
		delay: delay,
	}
}

// acquire blocks until a permit is free, then waits the flat delay while
// holding it. The delay is paid even when no prior request occurred. Every
// successful acquire must be paired with a release.
func (p *pacer) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		<-p.sem
		return ctx.Err()
	}
}

func (p *pacer) release() {
	<-p.sem
}
