package link

import (
	"context"
	"net"
	"testing"
	"time"
)

func waitReady(t *testing.T, tr Transport) byte {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !tr.ByteReady() {
		select {
		case <-deadline:
			t.Fatal("no byte arrived")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	return tr.ReceiveByte()
}

func TestStreamOverTCPConn(t *testing.T) {
	left, right := net.Pipe()

	a := NewStream(NewTCPConn(left))
	b := NewStream(NewTCPConn(right))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 2)
	go func() { errs <- a.Run(ctx) }()
	go func() { errs <- b.Run(ctx) }()

	if err := a.SendByte('D'); err != nil {
		t.Fatalf("SendByte failed: %v", err)
	}
	if got := waitReady(t, b); got != 'D' {
		t.Errorf("received %q, expected 'D'", got)
	}

	if err := b.SendByte(5); err != nil {
		t.Fatalf("SendByte failed: %v", err)
	}
	if got := waitReady(t, a); got != 5 {
		t.Errorf("received %d, expected 5", got)
	}

	cancel()
	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			if err != nil {
				t.Errorf("Run() after cancel = %v, expected nil", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("stream did not stop after cancel")
		}
	}

	if got := a.Metrics().Snapshot()["sent"].(int64); got != 1 {
		t.Errorf("sent = %d, expected 1", got)
	}
}

func TestStreamSendAfterCloseFails(t *testing.T) {
	left, right := net.Pipe()
	defer right.Close()

	s := NewStream(NewTCPConn(left))
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := s.SendByte(1); err != ErrClosed {
		t.Errorf("SendByte after Close = %v, expected ErrClosed", err)
	}
}
