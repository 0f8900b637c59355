package mqtt

import (
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	linkProbeTimeout    = 2 * time.Second
	sessionTimeout      = 5 * time.Second
	inboundBufferSize   = 32
	disconnectQuiesceMs = 250
)

// RealTransport talks to an actual MQTT broker. The link layer is a TCP
// reachability probe of the broker host; the session layer is the paho
// client. Auto-reconnect and connect-retry are disabled — the connectivity
// supervisor owns all retry policy.
type RealTransport struct {
	broker   string
	hostPort string

	client paho.Client

	mu      sync.Mutex
	linkUp  bool
	inbound *inboundBuffer
}

// NewRealTransport creates a transport for the given broker URL
// (e.g. tcp://192.168.1.200:1883).
func NewRealTransport(broker string) (*RealTransport, error) {
	u, err := url.Parse(broker)
	if err != nil {
		return nil, fmt.Errorf("parse broker url: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("broker url %q has no host", broker)
	}
	port := u.Port()
	if port == "" {
		port = "1883"
	}

	return &RealTransport{
		broker:   broker,
		hostPort: net.JoinHostPort(host, port),
		inbound:  newInboundBuffer(inboundBufferSize),
	}, nil
}

// LinkConnect probes TCP reachability of the broker host. A short dial with
// immediate close — bounded by linkProbeTimeout, never retried here.
func (t *RealTransport) LinkConnect() error {
	conn, err := net.DialTimeout("tcp", t.hostPort, linkProbeTimeout)
	if err != nil {
		t.mu.Lock()
		t.linkUp = false
		t.mu.Unlock()
		return fmt.Errorf("probe %s: %w", t.hostPort, err)
	}
	conn.Close()

	t.mu.Lock()
	t.linkUp = true
	t.mu.Unlock()
	return nil
}

// LinkUp reports the result of the most recent probe. A live session also
// implies a live link.
func (t *RealTransport) LinkUp() bool {
	if t.SessionUp() {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.linkUp
}

// SessionConnect establishes the MQTT session. Any previous session is torn
// down first.
func (t *RealTransport) SessionConnect(clientID string) error {
	if t.client != nil {
		t.client.Disconnect(disconnectQuiesceMs)
		t.client = nil
	}

	opts := paho.NewClientOptions().
		AddBroker(t.broker).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetConnectTimeout(sessionTimeout)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(sessionTimeout) {
		return fmt.Errorf("session connect timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("session connect: %w", err)
	}

	t.client = client
	return nil
}

// SessionSubscribe registers the readings subscription. Delivered payloads
// are copied into the inbound buffer; the paho callback does no other work.
func (t *RealTransport) SessionSubscribe(topic string) error {
	if t.client == nil {
		return fmt.Errorf("no session")
	}

	handler := func(_ paho.Client, msg paho.Message) {
		payload := make([]byte, len(msg.Payload()))
		copy(payload, msg.Payload())

		t.mu.Lock()
		t.inbound.push(payload)
		t.mu.Unlock()
	}

	// QoS 0: a lost reading is superseded by the next one anyway.
	token := t.client.Subscribe(topic, 0, handler)
	if !token.WaitTimeout(sessionTimeout) {
		return fmt.Errorf("subscribe timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// SessionUp reports whether the MQTT session is live.
func (t *RealTransport) SessionUp() bool {
	return t.client != nil && t.client.IsConnectionOpen()
}

// Pump drains the currently buffered inbound payloads without waiting.
func (t *RealTransport) Pump() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inbound.drainAll()
}

// Close disconnects the session.
func (t *RealTransport) Close() error {
	if t.client != nil {
		t.client.Disconnect(disconnectQuiesceMs)
		t.client = nil
	}
	return nil
}
