// Package mode holds the audio on/off toggle. The two button interrupt
// handlers write it and the scheduler reads it, so the enum and the dirty
// bit are packed into a single atomic word — a reader can never pair a new
// audio value with a stale dirty bit or vice versa.
package mode

import "sync/atomic"

const (
	bitAudioOn uint32 = 1 << 0
	bitDirty   uint32 = 1 << 1
)

// Toggle is the audio enable/disable latch with a single-consume change
// notification. Safe for concurrent use by the button handlers and the
// scheduler.
type Toggle struct {
	state atomic.Uint32
}

// NewToggle creates a toggle with the given initial audio setting and the
// dirty bit clear.
func NewToggle(audioOn bool) *Toggle {
	t := &Toggle{}
	if audioOn {
		t.state.Store(bitAudioOn)
	}
	return t
}

// Enable latches audio on and marks the toggle dirty. Edge-triggered: safe
// to call repeatedly, including when audio is already on.
func (t *Toggle) Enable() {
	t.state.Store(bitAudioOn | bitDirty)
}

// Disable latches audio off and marks the toggle dirty.
func (t *Toggle) Disable() {
	t.state.Store(bitDirty)
}

// AudioOn reports the current audio setting without consuming the dirty bit.
func (t *Toggle) AudioOn() bool {
	return t.state.Load()&bitAudioOn != 0
}

// Drain returns the current audio setting and whether it changed since the
// last drain, clearing the dirty bit. The value and the bit are read and
// cleared as one atomic unit, so a concurrent button press is either fully
// observed now or left intact for the next drain.
func (t *Toggle) Drain() (audioOn, changed bool) {
	for {
		old := t.state.Load()
		if old&bitDirty == 0 {
			return old&bitAudioOn != 0, false
		}
		if t.state.CompareAndSwap(old, old&^bitDirty) {
			return old&bitAudioOn != 0, true
		}
	}
}
