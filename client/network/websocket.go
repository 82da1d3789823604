package network

import (
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// Conn is the subset of a WebSocket connection the manager uses. Satisfied
// by *websocket.Conn; tests supply fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// DialFunc establishes a transport connection to a server address.
type DialFunc func(addr string) (Conn, error)

// Dial connects to a WebSocket server.
func Dial(addr string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %v", err)
	}
	return conn, nil
}

// validateAddr rejects addresses the transport cannot even be pointed at.
func validateAddr(addr string) error {
	u, err := url.Parse(addr)
	if err != nil {
		return fmt.Errorf("invalid server address %q: %v", addr, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid server address %q: scheme must be ws or wss", addr)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server address %q: missing host", addr)
	}
	return nil
}
