package registry

import (
	"context"
	"strings"

	"github.com/vovakirdan/tui-dodgeball/internal/link"
)

func init() {
	Register(tcpTransport{})
	Register(webSocketTransport{})
}

type tcpTransport struct{}

func (tcpTransport) Name() string  { return "tcp" }
func (tcpTransport) Title() string { return "raw TCP stream, one byte per message" }

func (tcpTransport) Listen(ctx context.Context, addr, _ string) (link.Conn, error) {
	return link.ListenTCP(ctx, addr)
}

func (tcpTransport) Dial(ctx context.Context, addr, _ string) (link.Conn, error) {
	return link.DialTCP(ctx, addr)
}

type webSocketTransport struct{}

func (webSocketTransport) Name() string  { return "ws" }
func (webSocketTransport) Title() string { return "WebSocket, one binary frame per message" }

func (webSocketTransport) Listen(ctx context.Context, addr, path string) (link.Conn, error) {
	return link.ServeWebSocket(ctx, addr, path)
}

func (webSocketTransport) Dial(ctx context.Context, addr, path string) (link.Conn, error) {
	return link.DialWebSocket(ctx, WebSocketURL(addr, path))
}

// WebSocketURL accepts a bare host:port or a full ws:// URL.
func WebSocketURL(addr, path string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	return "ws://" + addr + path
}
