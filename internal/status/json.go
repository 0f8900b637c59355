package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Severity      string        `json:"severity"`
	Terminal      bool          `json:"terminal"`
	DisplayOn     bool          `json:"display_on"`
	Reading       *ReadingJSON  `json:"reading,omitempty"`
	Connectivity  ConnJSON      `json:"connectivity"`
	Audio         string        `json:"audio"`
	Reactions     ReactionsJSON `json:"reaction_counts"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	Config        ConfigJSON    `json:"config"`
}

// ReadingJSON is the JSON representation of the latest sensor values.
type ReadingJSON struct {
	CO2         int     `json:"co2_ppm"`
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_rh"`
	VOCIndex    int     `json:"voc_index"`
	PM25        int     `json:"pm25_ugm3"`
}

// ConnJSON reports both connectivity layers.
type ConnJSON struct {
	LinkUp    bool   `json:"link_up"`
	SessionUp bool   `json:"session_up"`
	Broker    string `json:"broker"`
	Topic     string `json:"topic"`
}

// ReactionsJSON is the JSON representation of reaction counts.
type ReactionsJSON struct {
	Stuffy     int `json:"stuffy"`
	OpenWindow int `json:"open_window"`
	PassOut    int `json:"pass_out"`
	Recovered  int `json:"recovered"`
	Expired    int `json:"expired"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs         int64  `json:"tick_ms"`
	LinkRetryMs    int64  `json:"link_retry_ms"`
	SessionRetryMs int64  `json:"session_retry_ms"`
	DwellMs        int64  `json:"dwell_ms"`
	ThresholdsPPM  [4]int `json:"thresholds_ppm"`
	Broker         string `json:"broker"`
	Topic          string `json:"topic"`
	HTTPAddr       string `json:"http_addr"`
}

// FormatJSON returns the JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	severity := string(snap.Fields.Severity)
	if severity == "" {
		severity = "UNKNOWN"
	}
	audio := "muted"
	if snap.Fields.AudioOn {
		audio = "on"
	}

	inner := StatusInner{
		Severity:  severity,
		Terminal:  snap.Terminal,
		DisplayOn: snap.DisplayOn,
		Connectivity: ConnJSON{
			LinkUp:    snap.Fields.LinkUp,
			SessionUp: snap.Fields.SessionUp,
			Broker:    snap.Config.Broker,
			Topic:     snap.Config.Topic,
		},
		Audio: audio,
		Reactions: ReactionsJSON{
			Stuffy:     snap.Fields.Reactions.Stuffy,
			OpenWindow: snap.Fields.Reactions.OpenWindow,
			PassOut:    snap.Fields.Reactions.PassOut,
			Recovered:  snap.Fields.Reactions.Recovered,
			Expired:    snap.Fields.Reactions.Expired,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			TickMs:         snap.Config.TickMs,
			LinkRetryMs:    snap.Config.LinkRetryMs,
			SessionRetryMs: snap.Config.SessionRetryMs,
			DwellMs:        snap.Config.DwellMs,
			ThresholdsPPM: [4]int{
				snap.Config.Thresholds.Stuffy,
				snap.Config.Thresholds.OpenWindow,
				snap.Config.Thresholds.PassOut,
				snap.Config.Thresholds.Expire,
			},
			Broker:   snap.Config.Broker,
			Topic:    snap.Config.Topic,
			HTTPAddr: snap.Config.HTTPAddr,
		},
	}

	if snap.Fields.HasReading {
		inner.Reading = &ReadingJSON{
			CO2:         snap.Fields.CO2,
			Temperature: snap.Fields.Temperature,
			Humidity:    snap.Fields.Humidity,
			VOCIndex:    snap.Fields.VOCIndex,
			PM25:        snap.Fields.PM25,
		}
	}

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}
