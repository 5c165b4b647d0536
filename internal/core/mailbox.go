package core

// Mailbox is a bounded, non-blocking queue between a producer that must
// never stall and a slower consumer. When full, the oldest item is dropped
// to make room for the newest.
type Mailbox[T any] struct {
	ch chan T
}

// NewMailbox creates a mailbox holding up to size items (minimum 1).
func NewMailbox[T any](size int) *Mailbox[T] {
	if size < 1 {
		size = 1
	}
	return &Mailbox[T]{ch: make(chan T, size)}
}

// Put enqueues v, evicting the oldest item if the mailbox is full.
// It reports false if v itself had to be dropped.
func (m *Mailbox[T]) Put(v T) bool {
	select {
	case m.ch <- v:
		return true
	default:
	}

	// Full: drop oldest and retry (best effort)
	select {
	case <-m.ch:
	default:
	}
	select {
	case m.ch <- v:
		return true
	default:
		return false
	}
}

// C returns the receive side.
func (m *Mailbox[T]) C() <-chan T {
	return m.ch
}

// Len returns the number of queued items.
func (m *Mailbox[T]) Len() int {
	return len(m.ch)
}
