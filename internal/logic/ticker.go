package logic

import "time"

// TickTimer is a non-drifting periodic trigger. On each firing the due time
// advances by exactly the interval, never to "now", so long scheduler passes
// delay individual ticks but never shift the period. Missed ticks are caught
// up one per call.
type TickTimer struct {
	interval time.Duration
	nextDue  time.Time
}

// NewTickTimer creates a timer whose first firing is one interval after start.
func NewTickTimer(interval time.Duration, start time.Time) *TickTimer {
	return &TickTimer{
		interval: interval,
		nextDue:  start.Add(interval),
	}
}

// Due reports whether the timer has fired. Returns true at most once per
// elapsed interval; on returning true the due time advances by exactly one
// interval. Never blocks.
func (t *TickTimer) Due(now time.Time) bool {
	if now.Before(t.nextDue) {
		return false
	}
	t.nextDue = t.nextDue.Add(t.interval)
	return true
}

// NextDue returns the pending due time. Exposed for status display.
func (t *TickTimer) NextDue() time.Time {
	return t.nextDue
}
