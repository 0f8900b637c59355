// Package conn supervises the two connectivity layers. Each layer has its
// own non-blocking reconnect policy with a minimum retry interval; the
// session layer is gated on the link layer being up. Failures are logged and
// retried indefinitely — the device has no fallback mode.
package conn

import (
	"log"
	"time"

	"github.com/sweeney/co2-canary/internal/mqtt"
	"github.com/sweeney/co2-canary/internal/notify"
)

// State is the connection state of one layer.
type State string

const (
	Disconnected State = "DISCONNECTED"
	Connecting   State = "CONNECTING"
	Connected    State = "CONNECTED"
)

// retryPolicy tracks the attempt floor for one layer.
type retryPolicy struct {
	minInterval time.Duration
	lastAttempt time.Time
	attempted   bool
}

// ready reports whether enough time has passed since the previous attempt.
func (p *retryPolicy) ready(now time.Time) bool {
	if !p.attempted {
		return true
	}
	return now.Sub(p.lastAttempt) >= p.minInterval
}

func (p *retryPolicy) mark(now time.Time) {
	p.lastAttempt = now
	p.attempted = true
}

// Supervisor composes the link and session reconnect policies over a
// Transport. Not safe for concurrent use; it is owned by the scheduler's
// control thread.
type Supervisor struct {
	transport mqtt.Transport
	clientID  string
	topic     string
	notifier  notify.Notifier

	link    State
	session State

	linkRetry    retryPolicy
	sessionRetry retryPolicy
}

// New creates a Supervisor with both layers disconnected.
func New(t mqtt.Transport, clientID, topic string, linkRetry, sessionRetry time.Duration, n notify.Notifier) *Supervisor {
	if n == nil {
		n = notify.Nop{}
	}
	return &Supervisor{
		transport:    t,
		clientID:     clientID,
		topic:        topic,
		notifier:     n,
		link:         Disconnected,
		session:      Disconnected,
		linkRetry:    retryPolicy{minInterval: linkRetry},
		sessionRetry: retryPolicy{minInterval: sessionRetry},
	}
}

// LinkState returns the current link-layer state.
func (s *Supervisor) LinkState() State { return s.link }

// SessionState returns the current session-layer state.
func (s *Supervisor) SessionState() State { return s.session }

// Check reconciles supervisor state with transport liveness. Connections can
// drop between passes; a dropped session also invalidates the link so the
// next pass re-probes from the bottom.
func (s *Supervisor) Check() {
	if s.session == Connected && !s.transport.SessionUp() {
		log.Printf("conn: session dropped")
		s.notifier.Eventf("session dropped, reconnecting")
		s.session = Disconnected
		s.link = Disconnected
		return
	}
	if s.link == Connected && !s.transport.LinkUp() {
		log.Printf("conn: link dropped")
		s.link = Disconnected
		s.session = Disconnected
	}
}

// AttemptLink tries to bring the link layer up, refusing to re-attempt
// within the minimum retry interval of the previous attempt. Failure is
// logged, never escalated.
func (s *Supervisor) AttemptLink(now time.Time) State {
	if s.link == Connected {
		return s.link
	}
	if !s.linkRetry.ready(now) {
		return s.link
	}
	s.linkRetry.mark(now)
	s.link = Connecting

	if err := s.transport.LinkConnect(); err != nil {
		log.Printf("conn: link connect failed: %v", err)
		s.link = Disconnected
		return s.link
	}

	log.Printf("conn: link up")
	s.link = Connected
	return s.link
}

// AttemptSession tries to bring the session layer up. A guaranteed no-op
// returning Disconnected while the link layer is not Connected, even when
// called directly. On success it performs the one-time subscribe side effect
// before reporting Connected.
func (s *Supervisor) AttemptSession(now time.Time) State {
	if s.link != Connected {
		return Disconnected
	}
	if s.session == Connected {
		return s.session
	}
	if !s.sessionRetry.ready(now) {
		return s.session
	}
	s.sessionRetry.mark(now)
	s.session = Connecting

	if err := s.transport.SessionConnect(s.clientID); err != nil {
		log.Printf("conn: session connect failed: %v", err)
		s.session = Disconnected
		return s.session
	}

	if err := s.transport.SessionSubscribe(s.topic); err != nil {
		// Without the subscription the session is useless; retry the whole
		// connect on the next eligible attempt.
		log.Printf("conn: subscribe failed: %v", err)
		s.session = Disconnected
		return s.session
	}

	log.Printf("conn: session up, subscribed to %s", s.topic)
	s.notifier.Eventf("connected to broker, subscribed to %s", s.topic)
	s.session = Connected
	return s.session
}

// Pump drains buffered inbound messages. Returns nil unless the session
// layer is connected.
func (s *Supervisor) Pump() [][]byte {
	if s.session != Connected {
		return nil
	}
	return s.transport.Pump()
}
