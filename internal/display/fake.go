package display

// FakeRenderer records render calls for test assertions.
type FakeRenderer struct {
	// Statuses contains the fields passed to each RenderStatus call.
	Statuses []Fields

	// TerminalCalls counts RenderTerminal calls.
	TerminalCalls int

	// ClearCalls counts Clear calls.
	ClearCalls int

	// RenderError, if set, will be returned by all methods.
	RenderError error
}

// NewFakeRenderer creates a FakeRenderer for testing.
func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

// RenderStatus records the fields.
func (f *FakeRenderer) RenderStatus(fields Fields) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Statuses = append(f.Statuses, fields)
	return nil
}

// RenderTerminal counts the call.
func (f *FakeRenderer) RenderTerminal() error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.TerminalCalls++
	return nil
}

// Clear counts the call.
func (f *FakeRenderer) Clear() error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.ClearCalls++
	return nil
}

// Last returns the most recent status fields, or false if none.
func (f *FakeRenderer) Last() (Fields, bool) {
	if len(f.Statuses) == 0 {
		return Fields{}, false
	}
	return f.Statuses[len(f.Statuses)-1], true
}
