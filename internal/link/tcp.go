package link

import (
	"context"
	"fmt"
	"net"
)

// tcpConn frames a net.Conn as a packet Conn: each Read returns whatever
// bytes arrived, each Write sends its bytes as is.
type tcpConn struct {
	conn net.Conn
	buf  []byte
}

// NewTCPConn wraps an established net.Conn.
func NewTCPConn(conn net.Conn) Conn {
	return &tcpConn{conn: conn, buf: make([]byte, 64)}
}

func (c *tcpConn) Read(_ context.Context) ([]byte, error) {
	n, err := c.conn.Read(c.buf)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[:n])
	return out, nil
}

func (c *tcpConn) Write(_ context.Context, data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}

// DialTCP connects to a peer node listening on addr.
func DialTCP(ctx context.Context, addr string) (Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("link: dial %s: %w", addr, err)
	}
	return NewTCPConn(conn), nil
}

// ListenTCP waits for exactly one peer node on addr.
func ListenTCP(ctx context.Context, addr string) (Conn, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("link: listen %s: %w", addr, err)
	}
	defer ln.Close()

	type result struct {
		conn net.Conn
		err  error
	}
	accepted := make(chan result, 1)
	go func() {
		conn, err := ln.Accept()
		accepted <- result{conn, err}
	}()

	select {
	case <-ctx.Done():
		ln.Close()
		return nil, ctx.Err()
	case r := <-accepted:
		if r.err != nil {
			return nil, fmt.Errorf("link: accept on %s: %w", addr, r.err)
		}
		return NewTCPConn(r.conn), nil
	}
}
