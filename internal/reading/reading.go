// Package reading holds the latest decoded sensor values. The store is
// written from the MQTT delivery context and read from the scheduler, so the
// current reading is replaced wholesale through an atomic pointer swap —
// readers never observe fields from two different messages.
package reading

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// Reading is one complete set of decoded sensor values.
type Reading struct {
	CO2         int     // ppm
	Temperature float64 // °C
	Humidity    float64 // % RH
	VOCIndex    int
	PM25        int // µg/m³
}

// DecodeError reports a malformed or incomplete sensor payload.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode reading: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode reading: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// payload mirrors the sensor node's JSON message. Pointer fields distinguish
// "absent" from zero so a truncated message cannot decode as a reading full
// of zeros.
type payload struct {
	CO2         *int     `json:"co2_ppm"`
	Temperature *float64 `json:"temperature_c"`
	Humidity    *float64 `json:"humidity_rh"`
	VOCIndex    *int     `json:"voc_index"`
	PM25        *int     `json:"pm25_ugm3"`
}

// Decode parses a raw sensor message. All five fields are required; a
// missing or malformed field fails the whole message.
func Decode(raw []byte) (Reading, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Reading{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}

	missing := ""
	switch {
	case p.CO2 == nil:
		missing = "co2_ppm"
	case p.Temperature == nil:
		missing = "temperature_c"
	case p.Humidity == nil:
		missing = "humidity_rh"
	case p.VOCIndex == nil:
		missing = "voc_index"
	case p.PM25 == nil:
		missing = "pm25_ugm3"
	}
	if missing != "" {
		return Reading{}, &DecodeError{Reason: "missing field " + missing}
	}

	if *p.CO2 < 0 {
		return Reading{}, &DecodeError{Reason: fmt.Sprintf("negative co2_ppm %d", *p.CO2)}
	}

	return Reading{
		CO2:         *p.CO2,
		Temperature: *p.Temperature,
		Humidity:    *p.Humidity,
		VOCIndex:    *p.VOCIndex,
		PM25:        *p.PM25,
	}, nil
}

// Store holds the single current Reading.
type Store struct {
	cur atomic.Pointer[Reading]
}

// NewStore creates an empty store. Current reports no reading until the
// first successful Apply.
func NewStore() *Store {
	return &Store{}
}

// Apply decodes raw and, on success, atomically replaces the current
// reading. On decode failure the store is left unchanged and the error is
// returned for the caller to report.
func (s *Store) Apply(raw []byte) (Reading, error) {
	r, err := Decode(raw)
	if err != nil {
		return Reading{}, err
	}
	s.cur.Store(&r)
	return r, nil
}

// Current returns the latest complete snapshot. The bool is false until a
// first reading has been stored.
func (s *Store) Current() (Reading, bool) {
	p := s.cur.Load()
	if p == nil {
		return Reading{}, false
	}
	return *p, true
}
