package mqtt

// FakeTransport scripts connectivity outcomes and records calls for test
// assertions.
type FakeTransport struct {
	// LinkErr, if set, is returned by LinkConnect.
	LinkErr error

	// SessionErr, if set, is returned by SessionConnect.
	SessionErr error

	// SubscribeErr, if set, is returned by SessionSubscribe.
	SubscribeErr error

	// LinkAttempts counts LinkConnect calls.
	LinkAttempts int

	// SessionAttempts counts SessionConnect calls.
	SessionAttempts int

	// SubscribeCalls records topics passed to SessionSubscribe.
	SubscribeCalls []string

	// ClientIDs records identities passed to SessionConnect.
	ClientIDs []string

	// Inbound holds payloads returned (and cleared) by the next Pump.
	Inbound [][]byte

	// Closed tracks if Close was called.
	Closed bool

	linkUp    bool
	sessionUp bool
}

// NewFakeTransport creates a FakeTransport with both layers down.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// LinkConnect records the attempt and applies LinkErr.
func (f *FakeTransport) LinkConnect() error {
	f.LinkAttempts++
	if f.LinkErr != nil {
		f.linkUp = false
		return f.LinkErr
	}
	f.linkUp = true
	return nil
}

// LinkUp reports the scripted link state.
func (f *FakeTransport) LinkUp() bool {
	return f.linkUp
}

// SessionConnect records the attempt and applies SessionErr.
func (f *FakeTransport) SessionConnect(clientID string) error {
	f.SessionAttempts++
	f.ClientIDs = append(f.ClientIDs, clientID)
	if f.SessionErr != nil {
		return f.SessionErr
	}
	f.sessionUp = true
	return nil
}

// SessionSubscribe records the topic and applies SubscribeErr.
func (f *FakeTransport) SessionSubscribe(topic string) error {
	f.SubscribeCalls = append(f.SubscribeCalls, topic)
	return f.SubscribeErr
}

// SessionUp reports the scripted session state.
func (f *FakeTransport) SessionUp() bool {
	return f.sessionUp
}

// Pump returns the queued payloads and clears the queue.
func (f *FakeTransport) Pump() [][]byte {
	msgs := f.Inbound
	f.Inbound = nil
	return msgs
}

// Close marks the transport closed.
func (f *FakeTransport) Close() error {
	f.Closed = true
	f.sessionUp = false
	return nil
}

// Deliver queues a payload for the next Pump, as the broker would.
func (f *FakeTransport) Deliver(payload []byte) {
	f.Inbound = append(f.Inbound, payload)
}

// DropSession simulates the broker closing the MQTT connection.
func (f *FakeTransport) DropSession() {
	f.sessionUp = false
}

// DropLink simulates network loss: both layers go down.
func (f *FakeTransport) DropLink() {
	f.linkUp = false
	f.sessionUp = false
}
