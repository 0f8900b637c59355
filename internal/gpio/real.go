//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealButtons reads button presses from actual hardware using Linux GPIO
// character device edge events.
type RealButtons struct {
	chip    *gpiocdev.Chip
	pinOn   int
	pinOff  int
	onLine  *gpiocdev.Line
	offLine *gpiocdev.Line
}

// NewRealButtons creates a button reader for actual Raspberry Pi hardware.
func NewRealButtons(pinOn, pinOff int) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &RealButtons{chip: chip, pinOn: pinOn, pinOff: pinOff}, nil
}

// Watch requests both lines as pulled-up inputs and registers falling-edge
// handlers. Buttons short the pin to ground, so a press is a falling edge.
// No hardware debounce is requested: the toggle is an idempotent latch, so
// repeated edges are harmless.
func (b *RealButtons) Watch(onEnable, onDisable func()) error {
	onLine, err := b.chip.RequestLine(b.pinOn,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onEnable() }))
	if err != nil {
		return fmt.Errorf("request audio-on pin %d: %w", b.pinOn, err)
	}
	b.onLine = onLine

	offLine, err := b.chip.RequestLine(b.pinOff,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onDisable() }))
	if err != nil {
		onLine.Close()
		b.onLine = nil
		return fmt.Errorf("request audio-off pin %d: %w", b.pinOff, err)
	}
	b.offLine = offLine

	return nil
}

// Close releases GPIO resources.
func (b *RealButtons) Close() error {
	var errs []error
	if b.onLine != nil {
		if err := b.onLine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close audio-on pin: %w", err))
		}
	}
	if b.offLine != nil {
		if err := b.offLine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close audio-off pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
