package network

// ConnectionState is the connectivity state of the logical session.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateOpen
	StateClosing
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	}
	return "unknown"
}

// EventKind is a connectivity transition published by the manager.
type EventKind int

const (
	// EventConnected fires once per successful handshake.
	EventConnected EventKind = iota
	// EventDisconnected fires exactly once per open -> closed transition.
	EventDisconnected
	// EventConnectionError fires when a connection cannot be established.
	EventConnectionError
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventConnectionError:
		return "connection_error"
	}
	return "unknown"
}

// Event is one connectivity transition. Err is set for EventConnectionError.
type Event struct {
	Kind EventKind
	Err  error
}
