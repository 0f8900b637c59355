// Package logic contains pure business logic for air-quality severity
// tracking. This package has NO external dependencies (no GPIO, MQTT, OS,
// or time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "fmt"

// SeverityState represents the air-quality danger level derived from CO2 ppm.
type SeverityState string

const (
	SeverityNormal     SeverityState = "NORMAL"
	SeverityStuffy     SeverityState = "STUFFY"
	SeverityOpenWindow SeverityState = "OPEN_WINDOW"
	SeverityPassOut    SeverityState = "PASS_OUT"
	SeverityRecovering SeverityState = "RECOVERING"
	SeverityExpired    SeverityState = "EXPIRED"
)

// Thresholds holds the four CO2 boundaries (ppm) separating severity
// buckets. Must be strictly ascending: Stuffy < OpenWindow < PassOut < Expire.
type Thresholds struct {
	Stuffy     int // below this: NORMAL
	OpenWindow int // below this: STUFFY
	PassOut    int // below this: OPEN_WINDOW
	Expire     int // below this: PASS_OUT; at or above: EXPIRED
}

// Validate returns an error unless the thresholds are strictly ascending
// and positive.
func (t Thresholds) Validate() error {
	if t.Stuffy <= 0 {
		return fmt.Errorf("stuffy threshold must be positive, got %d", t.Stuffy)
	}
	if !(t.Stuffy < t.OpenWindow && t.OpenWindow < t.PassOut && t.PassOut < t.Expire) {
		return fmt.Errorf("thresholds must be strictly ascending, got %d/%d/%d/%d",
			t.Stuffy, t.OpenWindow, t.PassOut, t.Expire)
	}
	return nil
}
