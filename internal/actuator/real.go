//go:build linux

package actuator

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Pin definitions (BCM numbering)
const (
	DefaultPinWing  = 17 // wing servo driver
	DefaultPinHatch = 27 // cage hatch solenoid
	DefaultPinPerch = 22 // perch release
)

const flapPulse = 60 * time.Millisecond

// RealActuator drives GPIO output lines and spawns aplay for audio.
type RealActuator struct {
	chip     *gpiocdev.Chip
	wing     *gpiocdev.Line
	hatch    *gpiocdev.Line
	perch    *gpiocdev.Line
	audioDir string

	mu      sync.Mutex
	playing bool
}

// NewRealActuator creates an actuator for actual hardware. Audio tracks are
// resolved relative to audioDir.
func NewRealActuator(pinWing, pinHatch, pinPerch int, audioDir string) (*RealActuator, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	wing, err := chip.RequestLine(pinWing, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request wing pin %d: %w", pinWing, err)
	}
	hatch, err := chip.RequestLine(pinHatch, gpiocdev.AsOutput(0))
	if err != nil {
		wing.Close()
		chip.Close()
		return nil, fmt.Errorf("request hatch pin %d: %w", pinHatch, err)
	}
	perch, err := chip.RequestLine(pinPerch, gpiocdev.AsOutput(0))
	if err != nil {
		hatch.Close()
		wing.Close()
		chip.Close()
		return nil, fmt.Errorf("request perch pin %d: %w", pinPerch, err)
	}

	return &RealActuator{
		chip:     chip,
		wing:     wing,
		hatch:    hatch,
		perch:    perch,
		audioDir: audioDir,
	}, nil
}

// flap pulses the wing line n times. Worst case (ReactOpenWindow, 5 flaps)
// is 600ms, well inside the scheduler's pass bound.
func (a *RealActuator) flap(n int) error {
	for i := 0; i < n; i++ {
		if err := a.wing.SetValue(1); err != nil {
			return fmt.Errorf("wing up: %w", err)
		}
		time.Sleep(flapPulse)
		if err := a.wing.SetValue(0); err != nil {
			return fmt.Errorf("wing down: %w", err)
		}
		time.Sleep(flapPulse)
	}
	return nil
}

// ReactStuffy ruffles the wings.
func (a *RealActuator) ReactStuffy() error {
	return a.flap(2)
}

// ReactOpenWindow flaps insistently.
func (a *RealActuator) ReactOpenWindow() error {
	return a.flap(5)
}

// ReactPassOut slumps the wings and opens the cage hatch.
func (a *RealActuator) ReactPassOut() error {
	if err := a.wing.SetValue(0); err != nil {
		return fmt.Errorf("wing slump: %w", err)
	}
	if err := a.hatch.SetValue(1); err != nil {
		return fmt.Errorf("open hatch: %w", err)
	}
	return nil
}

// ReactRecovered closes the hatch and perks the wings back up.
func (a *RealActuator) ReactRecovered() error {
	if err := a.hatch.SetValue(0); err != nil {
		return fmt.Errorf("close hatch: %w", err)
	}
	return a.flap(1)
}

// ReactExpired drops the canary off its perch.
func (a *RealActuator) ReactExpired() error {
	if err := a.wing.SetValue(0); err != nil {
		return fmt.Errorf("wing drop: %w", err)
	}
	if err := a.perch.SetValue(1); err != nil {
		return fmt.Errorf("release perch: %w", err)
	}
	return nil
}

// PlayAudio starts aplay for the track and returns immediately. While a
// track is playing new requests are skipped rather than queued.
func (a *RealActuator) PlayAudio(track Track) error {
	a.mu.Lock()
	if a.playing {
		a.mu.Unlock()
		log.Printf("actuator: audio busy, skipping %s", track)
		return nil
	}
	a.playing = true
	a.mu.Unlock()

	path := filepath.Join(a.audioDir, string(track))
	cmd := exec.Command("aplay", "-q", path)
	if err := cmd.Start(); err != nil {
		a.mu.Lock()
		a.playing = false
		a.mu.Unlock()
		return fmt.Errorf("start aplay %s: %w", path, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("actuator: aplay %s: %v", path, err)
		}
		a.mu.Lock()
		a.playing = false
		a.mu.Unlock()
	}()

	return nil
}

// Close parks all lines low and releases GPIO resources.
func (a *RealActuator) Close() error {
	var errs []error
	for _, l := range []*gpiocdev.Line{a.wing, a.hatch, a.perch} {
		if l == nil {
			continue
		}
		if err := l.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("park line: %w", err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if a.chip != nil {
		if err := a.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
