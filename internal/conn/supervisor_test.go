package conn

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/co2-canary/internal/mqtt"
)

func newTestSupervisor(t *mqtt.FakeTransport) *Supervisor {
	return New(t, "canary-test", "air/canary/readings", 5*time.Second, 10*time.Second, nil)
}

func TestInitialStatesDisconnected(t *testing.T) {
	s := newTestSupervisor(mqtt.NewFakeTransport())
	if s.LinkState() != Disconnected {
		t.Errorf("link: got %s, want DISCONNECTED", s.LinkState())
	}
	if s.SessionState() != Disconnected {
		t.Errorf("session: got %s, want DISCONNECTED", s.SessionState())
	}
}

func TestAttemptLinkSuccess(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := s.AttemptLink(now); got != Connected {
		t.Errorf("got %s, want CONNECTED", got)
	}
	if ft.LinkAttempts != 1 {
		t.Errorf("link attempts: got %d, want 1", ft.LinkAttempts)
	}
}

func TestAttemptLinkRetryFloor(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	ft.LinkErr = errors.New("no route to host")
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := s.AttemptLink(now); got != Disconnected {
		t.Errorf("got %s, want DISCONNECTED after failure", got)
	}

	// Within the retry interval: no new attempt, no hot-looping.
	s.AttemptLink(now.Add(time.Second))
	s.AttemptLink(now.Add(4 * time.Second))
	if ft.LinkAttempts != 1 {
		t.Errorf("link attempts within retry floor: got %d, want 1", ft.LinkAttempts)
	}

	// At the interval: retried.
	s.AttemptLink(now.Add(5 * time.Second))
	if ft.LinkAttempts != 2 {
		t.Errorf("link attempts after retry floor: got %d, want 2", ft.LinkAttempts)
	}
}

func TestAttemptLinkNoopWhenConnected(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s.AttemptLink(now)
	s.AttemptLink(now.Add(10 * time.Second))
	if ft.LinkAttempts != 1 {
		t.Errorf("link attempts while connected: got %d, want 1", ft.LinkAttempts)
	}
}

func TestAttemptSessionNoopWhileLinkDown(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// Called directly without a link: guaranteed no-op.
	if got := s.AttemptSession(now); got != Disconnected {
		t.Errorf("got %s, want DISCONNECTED", got)
	}
	if ft.SessionAttempts != 0 {
		t.Errorf("session attempts: got %d, want 0", ft.SessionAttempts)
	}
}

func TestAttemptSessionConnectsAndSubscribesOnce(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s.AttemptLink(now)
	if got := s.AttemptSession(now); got != Connected {
		t.Errorf("got %s, want CONNECTED", got)
	}
	if ft.SessionAttempts != 1 {
		t.Errorf("session attempts: got %d, want 1", ft.SessionAttempts)
	}
	if len(ft.SubscribeCalls) != 1 || ft.SubscribeCalls[0] != "air/canary/readings" {
		t.Errorf("subscribe calls: got %v", ft.SubscribeCalls)
	}
	if len(ft.ClientIDs) != 1 || ft.ClientIDs[0] != "canary-test" {
		t.Errorf("client ids: got %v", ft.ClientIDs)
	}

	// Once connected, further attempts are no-ops.
	s.AttemptSession(now.Add(time.Minute))
	if ft.SessionAttempts != 1 || len(ft.SubscribeCalls) != 1 {
		t.Errorf("repeated attempt while connected: attempts=%d subscribes=%d",
			ft.SessionAttempts, len(ft.SubscribeCalls))
	}
}

func TestAttemptSessionRetryFloor(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	ft.SessionErr = errors.New("connection refused")
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s.AttemptLink(now)
	s.AttemptSession(now)
	s.AttemptSession(now.Add(9 * time.Second))
	if ft.SessionAttempts != 1 {
		t.Errorf("session attempts within retry floor: got %d, want 1", ft.SessionAttempts)
	}

	s.AttemptSession(now.Add(10 * time.Second))
	if ft.SessionAttempts != 2 {
		t.Errorf("session attempts after retry floor: got %d, want 2", ft.SessionAttempts)
	}
}

func TestSubscribeFailureLeavesSessionDown(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	ft.SubscribeErr = errors.New("not authorized")
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s.AttemptLink(now)
	if got := s.AttemptSession(now); got != Disconnected {
		t.Errorf("got %s, want DISCONNECTED when subscribe fails", got)
	}

	// The whole session connect is retried, including the subscribe.
	ft.SubscribeErr = nil
	if got := s.AttemptSession(now.Add(10 * time.Second)); got != Connected {
		t.Errorf("got %s, want CONNECTED after subscribe recovers", got)
	}
	if ft.SessionAttempts != 2 {
		t.Errorf("session attempts: got %d, want 2", ft.SessionAttempts)
	}
}

func TestCheckDetectsSessionDrop(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s.AttemptLink(now)
	s.AttemptSession(now)
	if s.SessionState() != Connected {
		t.Fatal("expected session connected")
	}

	ft.DropSession()
	s.Check()

	// A dropped session invalidates the link too: re-probe from the bottom.
	if s.SessionState() != Disconnected {
		t.Errorf("session after drop: got %s, want DISCONNECTED", s.SessionState())
	}
	if s.LinkState() != Disconnected {
		t.Errorf("link after session drop: got %s, want DISCONNECTED", s.LinkState())
	}
}

func TestPumpGatedOnSession(t *testing.T) {
	ft := mqtt.NewFakeTransport()
	ft.Deliver([]byte("msg"))
	s := newTestSupervisor(ft)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if msgs := s.Pump(); msgs != nil {
		t.Errorf("pump while disconnected: got %d messages, want none", len(msgs))
	}

	s.AttemptLink(now)
	s.AttemptSession(now)
	msgs := s.Pump()
	if len(msgs) != 1 || string(msgs[0]) != "msg" {
		t.Errorf("pump while connected: got %v", msgs)
	}
}
