package gpio

import "errors"

// FakeButtons is a test double that lets tests fire button edges directly.
type FakeButtons struct {
	onEnable  func()
	onDisable func()

	// WatchError, if set, will be returned by Watch.
	WatchError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeButtons creates a FakeButtons with no handlers registered.
func NewFakeButtons() *FakeButtons {
	return &FakeButtons{}
}

// Watch records the handlers.
func (f *FakeButtons) Watch(onEnable, onDisable func()) error {
	if f.WatchError != nil {
		return f.WatchError
	}
	f.onEnable = onEnable
	f.onDisable = onDisable
	return nil
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// PressEnable fires the audio-on edge.
func (f *FakeButtons) PressEnable() error {
	if f.onEnable == nil {
		return errors.New("no handler registered")
	}
	f.onEnable()
	return nil
}

// PressDisable fires the audio-off edge.
func (f *FakeButtons) PressDisable() error {
	if f.onDisable == nil {
		return errors.New("no handler registered")
	}
	f.onDisable()
	return nil
}
