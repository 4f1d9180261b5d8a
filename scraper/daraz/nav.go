package daraz

import (
	"context"
	"time"

	"daraz-scraper/driver"
	"daraz-scraper/utils"
)

// Navigator loads URLs with bounded retries and a "stop loading, proceed
// anyway" fallback, so a stalled network request never blocks the run.
type Navigator struct {
	driver  driver.PageDriver
	log     *utils.Logger
	backoff utils.BackoffPolicy
}

// NewNavigator returns a Navigator using the given retry backoff policy.
func NewNavigator(d driver.PageDriver, log *utils.Logger, backoff utils.BackoffPolicy) *Navigator {
	return &Navigator{driver: d, log: log, backoff: backoff}
}

// Load navigates to url with up to attempts tries. When readyCSS is empty
// there is no content check: a timed-out navigation is stopped in flight and
// counted as a success, since whatever rendered is good enough. Otherwise
// Load waits up to timeout for the readiness marker, aborting the in-flight
// load and backing off between attempts. A false return means "skip this
// unit of work", never a fatal condition.
func (n *Navigator) Load(ctx context.Context, url, readyCSS string, attempts int, timeout time.Duration) bool {
	for attempt := 1; attempt <= attempts; attempt++ {
		navErr := n.driver.Navigate(ctx, url)
		if navErr != nil {
			_ = n.driver.StopLoading(ctx)
		}

		if readyCSS == "" {
			return true
		}
		if err := n.driver.WaitReady(ctx, readyCSS, timeout); err == nil {
			return true
		}
		_ = n.driver.StopLoading(ctx)

		if attempt == attempts {
			break
		}
		n.log.Warn("[nav] %s not ready (attempt %d/%d) — retrying", url, attempt, attempts)
		n.backoff.Pause(attempt)
	}
	return false
}
