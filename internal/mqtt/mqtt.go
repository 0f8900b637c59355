// Package mqtt provides the connectivity transport with abstraction for
// testing. Two layers are exposed: the link layer (network reachability of
// the broker host) and the session layer (the MQTT connection and its
// subscription). Reconnect policy lives in internal/conn; this package only
// offers bounded, non-blocking operations.
package mqtt

// DefaultTopic is the MQTT topic the sensor node publishes readings to.
const DefaultTopic = "air/canary/readings"

// Transport is the wire-level collaborator. All methods return within a
// bounded time; none retries internally.
type Transport interface {
	// LinkConnect probes broker-host reachability. Returns nil when the
	// link layer is up.
	LinkConnect() error

	// LinkUp reports the result of the most recent probe.
	LinkUp() bool

	// SessionConnect establishes the MQTT session with the given client
	// identity. Bounded by the transport's connect timeout.
	SessionConnect(clientID string) error

	// SessionSubscribe registers the inbound subscription. Messages arrive
	// asynchronously and are buffered until the next Pump.
	SessionSubscribe(topic string) error

	// SessionUp reports whether the MQTT session is currently live.
	SessionUp() bool

	// Pump drains whatever inbound messages are currently buffered. Never
	// waits for more.
	Pump() [][]byte

	// Close tears down the session.
	Close() error
}
