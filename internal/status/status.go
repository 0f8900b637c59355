// Package status provides a thread-safe status tracker for the co2-canary
// daemon. The tracker is the device's display surface: it implements
// display.Renderer, and the HTTP server reads its snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/co2-canary/internal/display"
	"github.com/sweeney/co2-canary/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs         int64
	LinkRetryMs    int64
	SessionRetryMs int64
	DwellMs        int64
	Broker         string
	Topic          string
	HTTPAddr       string
	Thresholds     logic.Thresholds
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Fields    display.Fields
	Terminal  bool // terminal visual shown
	DisplayOn bool // false before first render and after Clear
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// RenderStatus replaces the displayed fields. Called from the scheduler on
// each display refresh.
func (t *Tracker) RenderStatus(f display.Fields) error {
	t.mu.Lock()
	t.snap.Fields = f
	t.snap.DisplayOn = true
	t.mu.Unlock()
	return nil
}

// RenderTerminal switches the display to the end-of-life visual.
func (t *Tracker) RenderTerminal() error {
	t.mu.Lock()
	t.snap.Terminal = true
	t.snap.DisplayOn = true
	t.mu.Unlock()
	return nil
}

// Clear blanks the display. The terminal marker stays set so the status
// page can still say why the device went dark.
func (t *Tracker) Clear() error {
	t.mu.Lock()
	t.snap.DisplayOn = false
	t.mu.Unlock()
	return nil
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
