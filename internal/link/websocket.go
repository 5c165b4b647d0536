package link

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

// wsConn carries link bytes as binary WebSocket messages.
type wsConn struct {
	ws *websocket.Conn
}

// NewWebSocketConn wraps an established gorilla connection.
func NewWebSocketConn(ws *websocket.Conn) Conn {
	ws.SetReadLimit(1 << 10)
	return &wsConn{ws: ws}
}

func (c *wsConn) Read(_ context.Context) ([]byte, error) {
	for {
		kind, payload, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		return payload, nil
	}
}

func (c *wsConn) Write(_ context.Context, data []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.BinaryMessage, data)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

// DialWebSocket connects to a peer node serving a WebSocket link at url.
func DialWebSocket(ctx context.Context, url string) (Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("link: websocket dial %s: %w", url, err)
	}
	return NewWebSocketConn(ws), nil
}

// ServeWebSocket serves path on addr and returns the first peer that upgrades.
// A second peer upgrading before shutdown is closed with a policy-violation frame.
func ServeWebSocket(ctx context.Context, addr, path string) (Conn, error) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  64,
		WriteBufferSize: 64,
		CheckOrigin:     func(*http.Request) bool { return true },
	}

	accepted := make(chan *websocket.Conn, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		select {
		case accepted <- ws:
		default:
			_ = ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "peer already connected"))
			_ = ws.Close()
		}
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}

	select {
	case <-ctx.Done():
		shutdown()
		return nil, ctx.Err()
	case err := <-serveErr:
		return nil, fmt.Errorf("link: websocket serve %s: %w", addr, err)
	case ws := <-accepted:
		// Hijacked connections survive Shutdown.
		go shutdown()
		return NewWebSocketConn(ws), nil
	}
}
