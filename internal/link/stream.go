package link

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stream adapts a packet Conn to the Transport contract.
// A reader goroutine feeds received bytes into a small inbound queue and a
// writer goroutine drains the outbound queue one byte per packet, so the
// scheduler never waits on the network.
type Stream struct {
	inbox
	conn    Conn
	inCh    chan byte
	out     chan byte
	done    chan struct{}
	once    sync.Once
	metrics *Metrics
}

// NewStream wraps conn. Call Run to start moving bytes.
func NewStream(conn Conn) *Stream {
	inCh := make(chan byte, DefaultQueueSize)
	return &Stream{
		inbox:   inbox{in: inCh},
		conn:    conn,
		inCh:    inCh,
		out:     make(chan byte, DefaultQueueSize),
		done:    make(chan struct{}),
		metrics: &Metrics{},
	}
}

// SendByte queues b for the writer without blocking.
func (s *Stream) SendByte(b byte) error {
	select {
	case <-s.done:
		s.metrics.incDropped()
		return ErrClosed
	default:
	}

	select {
	case s.out <- b:
		return nil
	default:
		s.metrics.incDropped()
		return ErrQueueFull
	}
}

// ByteReady reports whether a received byte is waiting.
func (s *Stream) ByteReady() bool {
	return s.ready()
}

// ReceiveByte consumes the waiting byte.
func (s *Stream) ReceiveByte() byte {
	b := s.take()
	s.metrics.incReceived()
	return b
}

// Metrics returns the stream's counters.
func (s *Stream) Metrics() *Metrics {
	return s.metrics
}

// Run pumps bytes until ctx is cancelled or the connection fails.
// The connection is closed on return.
func (s *Stream) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.readLoop(ctx)
	})
	g.Go(func() error {
		return s.writeLoop(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})

	return g.Wait()
}

func (s *Stream) readLoop(ctx context.Context) error {
	for {
		data, err := s.conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.metrics.incErrors()
			return fmt.Errorf("link: read: %w", err)
		}
		for _, b := range data {
			select {
			case s.inCh <- b:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (s *Stream) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-s.out:
			if err := s.conn.Write(ctx, []byte{b}); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.metrics.incErrors()
				s.metrics.incDropped()
				return fmt.Errorf("link: write: %w", err)
			}
			s.metrics.incSent()
		}
	}
}

// Close stops accepting bytes and closes the connection.
// Safe to call multiple times.
func (s *Stream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

var _ Transport = (*Stream)(nil)
