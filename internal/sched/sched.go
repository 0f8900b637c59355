// Package sched runs the cooperative main loop. One control thread executes
// a fixed sequence of phases every pass — mode drain, connectivity
// maintenance, message ingestion, display refresh, severity tick — with no
// phase allowed to block beyond a bounded time. Recoverable failures are
// logged and never abort a pass; the only way out is the terminal sequence.
package sched

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/co2-canary/internal/actuator"
	"github.com/sweeney/co2-canary/internal/conn"
	"github.com/sweeney/co2-canary/internal/display"
	"github.com/sweeney/co2-canary/internal/logic"
	"github.com/sweeney/co2-canary/internal/mode"
	"github.com/sweeney/co2-canary/internal/notify"
	"github.com/sweeney/co2-canary/internal/reading"
)

// Config holds the scheduler's startup constants. None change at runtime.
type Config struct {
	Thresholds    logic.Thresholds
	TickInterval  time.Duration
	TerminalDwell time.Duration
	PassInterval  time.Duration // sleep between passes
}

// Deps are the scheduler's collaborators. Now and Sleep are injectable for
// tests and default to the real clock.
type Deps struct {
	Supervisor *conn.Supervisor
	Store      *reading.Store
	Toggle     *mode.Toggle
	Actuator   actuator.Actuator
	Display    display.Renderer
	Notifier   notify.Notifier
	Now        func() time.Time
	Sleep      func(time.Duration)
}

// Scheduler owns the severity state and interleaves all periodic work.
// Single-threaded by design; only the reading store and the mode toggle are
// written from outside its pass.
type Scheduler struct {
	cfg Config
	d   Deps

	ticker       *logic.TickTimer
	severity     logic.SeverityState
	counts       display.Counts
	refresh      bool
	terminalDone bool
}

// New creates a Scheduler starting in the NORMAL state with an initial
// display refresh pending.
func New(cfg Config, d Deps) *Scheduler {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	return &Scheduler{
		cfg:      cfg,
		d:        d,
		ticker:   logic.NewTickTimer(cfg.TickInterval, d.Now()),
		severity: logic.SeverityNormal,
		refresh:  true,
	}
}

// Severity returns the current severity state.
func (s *Scheduler) Severity() logic.SeverityState {
	return s.severity
}

// TerminalDone reports whether the terminal sequence has run.
func (s *Scheduler) TerminalDone() bool {
	return s.terminalDone
}

// Run executes passes until ctx is cancelled. Once the terminal sequence
// has run it idles permanently; only a restart resumes monitoring.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Pass()

		if s.terminalDone {
			log.Printf("sched: terminal sequence complete, idling until restart")
			<-ctx.Done()
			return ctx.Err()
		}

		s.d.Sleep(s.cfg.PassInterval)
	}
}

// Pass executes one cooperative pass over all phases.
func (s *Scheduler) Pass() {
	now := s.d.Now()

	// Phase 1: drain the mode toggle. Consumed exactly once per change.
	if audio, changed := s.d.Toggle.Drain(); changed {
		log.Printf("sched: audio %s", audioWord(audio))
		s.refresh = true
	}

	// Phases 2-3: connectivity maintenance, one branch per pass. The
	// supervisor rate-limits actual attempts; ingestion drains only what is
	// already buffered.
	s.d.Supervisor.Check()
	switch {
	case s.d.Supervisor.LinkState() != conn.Connected:
		before := s.d.Supervisor.LinkState()
		if after := s.d.Supervisor.AttemptLink(now); after != before {
			s.refresh = true
		}
	case s.d.Supervisor.SessionState() != conn.Connected:
		before := s.d.Supervisor.SessionState()
		if after := s.d.Supervisor.AttemptSession(now); after != before {
			s.refresh = true
		}
	default:
		for _, raw := range s.d.Supervisor.Pump() {
			if _, err := s.d.Store.Apply(raw); err != nil {
				log.Printf("sched: %v", err)
				s.d.Notifier.Eventf("dropped malformed reading: %v", err)
			}
		}
	}

	// Phase 4: terminal sequence, exactly once, on the pass after the
	// EXPIRED transition.
	if s.severity == logic.SeverityExpired {
		if !s.terminalDone {
			s.runTerminal()
		}
		return
	}

	// Phase 5: at most one display refresh per pass.
	if s.refresh {
		s.renderStatus()
		s.refresh = false
	}

	// Phase 6: severity tick. The reading is snapshotted atomically here;
	// if no message has ever arrived there is nothing to judge yet.
	if s.ticker.Due(now) {
		if r, ok := s.d.Store.Current(); ok {
			next := logic.Transition(s.severity, r.CO2, s.cfg.Thresholds)
			if next != s.severity {
				log.Printf("sched: severity %s -> %s (co2 %d ppm)", s.severity, next, r.CO2)
				s.d.Notifier.Eventf("severity %s -> %s (co2 %d ppm)", s.severity, next, r.CO2)
				s.dispatch(next)
				s.severity = next
				s.refresh = true
			}
		}
	}
}

// dispatch fires the actuator reaction for the state being entered. Audio
// is gated by the mode toggle. NORMAL has no reaction beyond the display
// refresh, and the EXPIRED reaction belongs to the terminal sequence.
func (s *Scheduler) dispatch(next logic.SeverityState) {
	var err error
	var track actuator.Track

	switch next {
	case logic.SeverityNormal:
	case logic.SeverityStuffy:
		err = s.d.Actuator.ReactStuffy()
		track = actuator.TrackChirp
		s.counts.Stuffy++
	case logic.SeverityOpenWindow:
		err = s.d.Actuator.ReactOpenWindow()
		track = actuator.TrackSquawk
		s.counts.OpenWindow++
	case logic.SeverityPassOut:
		err = s.d.Actuator.ReactPassOut()
		track = actuator.TrackWheeze
		s.counts.PassOut++
	case logic.SeverityRecovering:
		err = s.d.Actuator.ReactRecovered()
		track = actuator.TrackTrill
		s.counts.Recovered++
	case logic.SeverityExpired:
		s.counts.Expired++
	}

	if err != nil {
		log.Printf("sched: reaction for %s failed: %v", next, err)
	}
	if track != "" && s.d.Toggle.AudioOn() {
		if err := s.d.Actuator.PlayAudio(track); err != nil {
			log.Printf("sched: audio for %s failed: %v", next, err)
		}
	}
}

// runTerminal performs the end-of-life sequence: terminal reaction,
// terminal visual, dwell, blank. The dwell is the one deliberate long wait
// in the whole scheduler — there is no more work to delay.
func (s *Scheduler) runTerminal() {
	log.Printf("sched: co2 past expiry threshold, running terminal sequence")
	s.d.Notifier.Eventf("the canary has expired — restart required")

	if err := s.d.Actuator.ReactExpired(); err != nil {
		log.Printf("sched: terminal reaction failed: %v", err)
	}
	if s.d.Toggle.AudioOn() {
		if err := s.d.Actuator.PlayAudio(actuator.TrackDirge); err != nil {
			log.Printf("sched: terminal audio failed: %v", err)
		}
	}
	if err := s.d.Display.RenderTerminal(); err != nil {
		log.Printf("sched: terminal render failed: %v", err)
	}

	s.d.Sleep(s.cfg.TerminalDwell)

	if err := s.d.Display.Clear(); err != nil {
		log.Printf("sched: display clear failed: %v", err)
	}
	s.terminalDone = true
}

// renderStatus composes the display fields from the current snapshots.
func (s *Scheduler) renderStatus() {
	f := display.Fields{
		Severity:  s.severity,
		LinkUp:    s.d.Supervisor.LinkState() == conn.Connected,
		SessionUp: s.d.Supervisor.SessionState() == conn.Connected,
		AudioOn:   s.d.Toggle.AudioOn(),
		Reactions: s.counts,
	}
	if r, ok := s.d.Store.Current(); ok {
		f.CO2 = r.CO2
		f.Temperature = r.Temperature
		f.Humidity = r.Humidity
		f.VOCIndex = r.VOCIndex
		f.PM25 = r.PM25
		f.HasReading = true
	}

	if err := s.d.Display.RenderStatus(f); err != nil {
		log.Printf("sched: render failed: %v", err)
	}
}

func audioWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
