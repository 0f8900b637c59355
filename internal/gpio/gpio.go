// Package gpio provides the audio-mode button inputs with hardware
// abstraction. The real implementation uses Linux GPIO character device edge
// events. The fake implementation allows testing without hardware.
package gpio

// Buttons delivers edge-triggered presses of the two audio-mode buttons.
// Handlers run on the GPIO event goroutine and must be safe to call
// concurrently with the main loop; they are expected to do nothing beyond
// latching a value (see internal/mode).
type Buttons interface {
	// Watch registers the press handlers and starts event delivery.
	Watch(onEnable, onDisable func()) error

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	PinAudioOn  = 23 // audio enable button
	PinAudioOff = 24 // audio disable button
)
