package actuator

// FakeActuator records reaction and audio calls in order for test assertions.
type FakeActuator struct {
	// Reactions contains the reaction method names in call order, e.g.
	// "STUFFY", "OPEN_WINDOW", "PASS_OUT", "RECOVERED", "EXPIRED".
	Reactions []string

	// Played contains the tracks passed to PlayAudio in call order.
	Played []Track

	// ReactError, if set, will be returned by every reaction method.
	ReactError error

	// PlayError, if set, will be returned by PlayAudio.
	PlayError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeActuator creates a FakeActuator for testing.
func NewFakeActuator() *FakeActuator {
	return &FakeActuator{}
}

func (f *FakeActuator) react(name string) error {
	if f.ReactError != nil {
		return f.ReactError
	}
	f.Reactions = append(f.Reactions, name)
	return nil
}

// ReactStuffy records the call.
func (f *FakeActuator) ReactStuffy() error { return f.react("STUFFY") }

// ReactOpenWindow records the call.
func (f *FakeActuator) ReactOpenWindow() error { return f.react("OPEN_WINDOW") }

// ReactPassOut records the call.
func (f *FakeActuator) ReactPassOut() error { return f.react("PASS_OUT") }

// ReactRecovered records the call.
func (f *FakeActuator) ReactRecovered() error { return f.react("RECOVERED") }

// ReactExpired records the call.
func (f *FakeActuator) ReactExpired() error { return f.react("EXPIRED") }

// PlayAudio records the track.
func (f *FakeActuator) PlayAudio(track Track) error {
	if f.PlayError != nil {
		return f.PlayError
	}
	f.Played = append(f.Played, track)
	return nil
}

// Close marks the actuator as closed.
func (f *FakeActuator) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded calls.
func (f *FakeActuator) Reset() {
	f.Reactions = nil
	f.Played = nil
	f.Closed = false
	f.ReactError = nil
	f.PlayError = nil
}
