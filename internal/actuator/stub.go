//go:build !linux

package actuator

import "errors"

// Pin definitions (BCM numbering)
const (
	DefaultPinWing  = 17
	DefaultPinHatch = 27
	DefaultPinPerch = 22
)

// RealActuator is not available on non-Linux platforms.
type RealActuator struct{}

// NewRealActuator returns an error on non-Linux platforms.
func NewRealActuator(pinWing, pinHatch, pinPerch int, audioDir string) (*RealActuator, error) {
	return nil, errors.New("actuator: not supported on this platform (requires Linux)")
}

func (a *RealActuator) ReactStuffy() error     { return errors.New("actuator: not supported") }
func (a *RealActuator) ReactOpenWindow() error { return errors.New("actuator: not supported") }
func (a *RealActuator) ReactPassOut() error    { return errors.New("actuator: not supported") }
func (a *RealActuator) ReactRecovered() error  { return errors.New("actuator: not supported") }
func (a *RealActuator) ReactExpired() error    { return errors.New("actuator: not supported") }
func (a *RealActuator) PlayAudio(Track) error  { return errors.New("actuator: not supported") }
func (a *RealActuator) Close() error           { return nil }
