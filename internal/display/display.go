// Package display is the renderer contract. The scheduler supplies semantic
// field values only; how they become pixels (or, on this device, a status
// page) is the renderer's business.
package display

import "github.com/sweeney/co2-canary/internal/logic"

// Counts tracks how many times each severity reaction has fired since
// startup. Shown on the status page.
type Counts struct {
	Stuffy     int
	OpenWindow int
	PassOut    int
	Recovered  int
	Expired    int
}

// Fields is one complete set of values for a status refresh.
type Fields struct {
	CO2         int
	Temperature float64
	Humidity    float64
	VOCIndex    int
	PM25        int

	// HasReading is false until the first sensor message decodes; renderers
	// show placeholders rather than zeros.
	HasReading bool

	Severity logic.SeverityState

	LinkUp    bool
	SessionUp bool
	AudioOn   bool

	Reactions Counts
}

// Renderer is the display collaborator. All methods return within a bounded
// time; render failures are logged by the caller and never abort a pass.
type Renderer interface {
	// RenderStatus replaces the displayed status with the given fields.
	RenderStatus(f Fields) error

	// RenderTerminal shows the end-of-life visual.
	RenderTerminal() error

	// Clear blanks the display.
	Clear() error
}
