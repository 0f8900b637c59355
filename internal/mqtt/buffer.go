package mqtt

import "log"

// inboundBuffer is a fixed-capacity FIFO holding raw payloads between the
// paho delivery callback and the scheduler's Pump. Not safe for concurrent
// use — caller must synchronize.
type inboundBuffer struct {
	buf      [][]byte
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any message was dropped since last drain
}

func newInboundBuffer(capacity int) *inboundBuffer {
	return &inboundBuffer{
		buf:      make([][]byte, capacity),
		capacity: capacity,
	}
}

func (b *inboundBuffer) push(payload []byte) {
	if b.count == b.capacity {
		if !b.overflow {
			log.Printf("mqtt: inbound buffer full (%d messages), dropping oldest", b.capacity)
			b.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		b.buf[b.head] = payload
		b.head = (b.head + 1) % b.capacity
		// count stays at capacity
		return
	}
	b.buf[b.head] = payload
	b.head = (b.head + 1) % b.capacity
	b.count++
}

func (b *inboundBuffer) drainAll() [][]byte {
	if b.count == 0 {
		return nil
	}

	result := make([][]byte, b.count)
	// Oldest item is at (head - count) mod capacity
	start := (b.head - b.count + b.capacity) % b.capacity
	for i := 0; i < b.count; i++ {
		result[i] = b.buf[(start+i)%b.capacity]
	}

	b.count = 0
	b.head = 0
	b.overflow = false
	return result
}

func (b *inboundBuffer) len() int {
	return b.count
}
