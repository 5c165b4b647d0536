package link

import "sync"

// DefaultQueueSize bounds the per-direction byte queues.
const DefaultQueueSize = 16

// PipeEnd is one side of an in-memory link.
type PipeEnd struct {
	inbox
	out     chan<- byte
	done    chan struct{}
	peer    *PipeEnd
	once    sync.Once
	metrics *Metrics
}

// Pipe returns two transports connected back to back.
// Bytes sent on one end become ready on the other, in order.
func Pipe() (*PipeEnd, *PipeEnd) {
	ab := make(chan byte, DefaultQueueSize)
	ba := make(chan byte, DefaultQueueSize)

	a := &PipeEnd{
		inbox:   inbox{in: ba},
		out:     ab,
		done:    make(chan struct{}),
		metrics: &Metrics{},
	}
	b := &PipeEnd{
		inbox:   inbox{in: ab},
		out:     ba,
		done:    make(chan struct{}),
		metrics: &Metrics{},
	}
	a.peer, b.peer = b, a
	return a, b
}

// SendByte queues b for the peer without blocking.
func (p *PipeEnd) SendByte(b byte) error {
	select {
	case <-p.done:
		p.metrics.incDropped()
		return ErrClosed
	case <-p.peer.done:
		// Nobody will read it; the byte vanishes like on an unplugged cable.
		p.metrics.incSent()
		return nil
	default:
	}

	select {
	case p.out <- b:
		p.metrics.incSent()
		return nil
	default:
		p.metrics.incDropped()
		return ErrQueueFull
	}
}

// ByteReady reports whether a byte from the peer is waiting.
func (p *PipeEnd) ByteReady() bool {
	return p.ready()
}

// ReceiveByte consumes the waiting byte.
func (p *PipeEnd) ReceiveByte() byte {
	b := p.take()
	p.metrics.incReceived()
	return b
}

// Close detaches this end. Safe to call multiple times.
func (p *PipeEnd) Close() error {
	p.once.Do(func() {
		close(p.done)
	})
	return nil
}

// Metrics returns this end's counters.
func (p *PipeEnd) Metrics() *Metrics {
	return p.metrics
}

var _ Transport = (*PipeEnd)(nil)
