// Package notify is the best-effort operator channel: free-text
// notifications of severity transitions, connectivity changes, and decode
// failures. Notifications are diagnostic only — never required for
// correctness, and never allowed to stall a scheduler pass.
package notify

import (
	"fmt"
	"sync"
)

// Notifier delivers a formatted operator notification. Implementations must
// return quickly; delivery happens out-of-band or not at all.
type Notifier interface {
	Eventf(format string, args ...any)
}

// Nop discards all notifications.
type Nop struct{}

// Eventf does nothing.
func (Nop) Eventf(format string, args ...any) {}

// Fake records notifications for test assertions.
type Fake struct {
	mu     sync.Mutex
	Events []string
}

// Eventf appends the formatted message.
func (f *Fake) Eventf(format string, args ...any) {
	f.mu.Lock()
	f.Events = append(f.Events, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

// Snapshot returns a copy of the recorded messages.
func (f *Fake) Snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Events))
	copy(out, f.Events)
	return out
}
