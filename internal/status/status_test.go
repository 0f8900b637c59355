package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/co2-canary/internal/display"
	"github.com/sweeney/co2-canary/internal/logic"
)

func testConfig() Config {
	return Config{
		TickMs:   1000,
		Broker:   "tcp://localhost:1883",
		Topic:    "air/canary/readings",
		HTTPAddr: ":8080",
		Thresholds: logic.Thresholds{
			Stuffy: 1000, OpenWindow: 2000, PassOut: 3000, Expire: 4000,
		},
	}
}

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.TickMs != 1000 {
		t.Errorf("Config.TickMs: got %d, want 1000", snap.Config.TickMs)
	}
	if snap.DisplayOn {
		t.Error("expected DisplayOn=false initially")
	}
	if snap.Terminal {
		t.Error("expected Terminal=false initially")
	}
}

func TestRenderStatusAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	f := display.Fields{
		CO2: 1500, Temperature: 22.5, Humidity: 40, VOCIndex: 110, PM25: 6,
		HasReading: true,
		Severity:   logic.SeverityStuffy,
		LinkUp:     true, SessionUp: true, AudioOn: true,
		Reactions: display.Counts{Stuffy: 1},
	}
	if err := tr.RenderStatus(f); err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}

	snap := tr.Snapshot()
	if !snap.DisplayOn {
		t.Error("expected DisplayOn=true after render")
	}
	if snap.Fields != f {
		t.Errorf("Fields: got %+v, want %+v", snap.Fields, f)
	}
}

func TestRenderTerminalAndClear(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	tr.RenderTerminal()
	snap := tr.Snapshot()
	if !snap.Terminal || !snap.DisplayOn {
		t.Errorf("after RenderTerminal: Terminal=%v DisplayOn=%v, want true/true",
			snap.Terminal, snap.DisplayOn)
	}

	tr.Clear()
	snap = tr.Snapshot()
	if snap.DisplayOn {
		t.Error("expected DisplayOn=false after Clear")
	}
	if !snap.Terminal {
		t.Error("Terminal marker should survive Clear")
	}
}

func TestSnapshotConcurrentWithRender(t *testing.T) {
	// Run with -race.
	tr := NewTracker(time.Now(), testConfig())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.RenderStatus(display.Fields{CO2: i, HasReading: true})
		}
	}()

	for i := 0; i < 1000; i++ {
		tr.Snapshot()
	}
	wg.Wait()
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.RenderStatus(display.Fields{
		CO2: 2500, Temperature: 23, Humidity: 45.5, VOCIndex: 130, PM25: 9,
		HasReading: true,
		Severity:   logic.SeverityOpenWindow,
		LinkUp:     true, SessionUp: true, AudioOn: false,
		Reactions: display.Counts{Stuffy: 2, OpenWindow: 1},
	})

	data := FormatJSON(tr.Snapshot())

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Severity != "OPEN_WINDOW" {
		t.Errorf("severity: got %q, want OPEN_WINDOW", parsed.Status.Severity)
	}
	if parsed.Status.Reading == nil {
		t.Fatal("expected reading block")
	}
	if parsed.Status.Reading.CO2 != 2500 {
		t.Errorf("co2: got %d, want 2500", parsed.Status.Reading.CO2)
	}
	if parsed.Status.Audio != "muted" {
		t.Errorf("audio: got %q, want muted", parsed.Status.Audio)
	}
	if !parsed.Status.Connectivity.SessionUp {
		t.Error("expected session_up=true")
	}
	if parsed.Status.Reactions.OpenWindow != 1 {
		t.Errorf("open_window count: got %d, want 1", parsed.Status.Reactions.OpenWindow)
	}
	if parsed.Status.Config.ThresholdsPPM != [4]int{1000, 2000, 3000, 4000} {
		t.Errorf("thresholds: got %v", parsed.Status.Config.ThresholdsPPM)
	}
}

func TestFormatJSONNoReading(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	data := FormatJSON(tr.Snapshot())

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Severity != "UNKNOWN" {
		t.Errorf("severity: got %q, want UNKNOWN", parsed.Status.Severity)
	}
	if parsed.Status.Reading != nil {
		t.Error("expected reading omitted before first message")
	}
}
