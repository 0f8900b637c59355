// Package actuator drives the mechanical canary: wing flapping, the cage
// hatch, and audio playback. The scheduler calls reactions by name on
// severity transitions and never inspects their internal timing; every
// reaction returns within a bounded time.
package actuator

// Track names an audio file under the configured audio directory.
type Track string

const (
	TrackChirp  Track = "chirp.wav"  // stuffy: a short complaint
	TrackSquawk Track = "squawk.wav" // open window: insistent
	TrackWheeze Track = "wheeze.wav" // pass out: laboured
	TrackTrill  Track = "trill.wav"  // recovered: the all-clear
	TrackDirge  Track = "dirge.wav"  // expired
)

// Actuator performs the per-severity physical reactions. Audio is separate
// so the scheduler can gate it on the mode toggle.
type Actuator interface {
	// ReactStuffy ruffles the wings.
	ReactStuffy() error

	// ReactOpenWindow flaps insistently.
	ReactOpenWindow() error

	// ReactPassOut slumps the wings and opens the cage hatch.
	ReactPassOut() error

	// ReactRecovered closes the hatch and perks the wings back up.
	ReactRecovered() error

	// ReactExpired drops the canary off its perch. Terminal; the scheduler
	// calls it exactly once.
	ReactExpired() error

	// PlayAudio starts the given track without waiting for it to finish.
	PlayAudio(track Track) error

	// Close releases actuator resources.
	Close() error
}
