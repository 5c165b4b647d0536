package link

import (
	"context"
	"errors"
	"sync/atomic"
)

//go:generate go tool mockgen -destination=./mocks/transport_mock.go -package=mocks . Transport

// Transport is the half-duplex byte link between two nodes.
// All methods are called from the scheduler goroutine and must not block.
type Transport interface {
	// SendByte queues one byte for the peer. A failed send is final.
	SendByte(b byte) error

	// ByteReady reports whether a received byte is waiting.
	ByteReady() bool

	// ReceiveByte consumes the waiting byte. Only valid after ByteReady returned true.
	ReceiveByte() byte
}

// Conn is a packet-oriented connection a Stream can run over.
type Conn interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

var (
	// ErrQueueFull is returned when the outbound queue cannot take another byte.
	ErrQueueFull = errors.New("link: outbound queue full")

	// ErrClosed is returned when sending on a closed transport.
	ErrClosed = errors.New("link: transport closed")
)

// Metrics counts link traffic. Safe for concurrent use.
type Metrics struct {
	Sent     int64 // Bytes handed to the wire
	Received int64 // Bytes consumed by ReceiveByte
	Dropped  int64 // Bytes discarded because a queue was full or closed
	Errors   int64 // Wire read/write failures
}

func (m *Metrics) incSent()     { atomic.AddInt64(&m.Sent, 1) }
func (m *Metrics) incReceived() { atomic.AddInt64(&m.Received, 1) }
func (m *Metrics) incDropped()  { atomic.AddInt64(&m.Dropped, 1) }
func (m *Metrics) incErrors()   { atomic.AddInt64(&m.Errors, 1) }

// Snapshot returns a read-only copy for logging.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"sent":     atomic.LoadInt64(&m.Sent),
		"received": atomic.LoadInt64(&m.Received),
		"dropped":  atomic.LoadInt64(&m.Dropped),
		"errors":   atomic.LoadInt64(&m.Errors),
	}
}

// inbox is the receive half shared by the transports: a channel of bytes
// plus a one-byte lookahead so ByteReady can be answered without consuming.
type inbox struct {
	in      <-chan byte
	pending byte
	has     bool
}

func (r *inbox) ready() bool {
	if r.has {
		return true
	}
	select {
	case b := <-r.in:
		r.pending = b
		r.has = true
		return true
	default:
		return false
	}
}

func (r *inbox) take() byte {
	if !r.has && !r.ready() {
		return 0
	}
	r.has = false
	return r.pending
}
