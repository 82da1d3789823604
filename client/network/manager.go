package network

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/modernart-go/client/pkg/log"
	"github.com/modernart-go/client/pkg/messages"
	"github.com/modernart-go/client/pkg/queue"
)

const (
	DefaultServerAddr    = "ws://localhost:8080/ws"
	DefaultRetryInterval = 3 * time.Second
)

// Manager maintains at most one active session to the game server and
// delivers inbound messages in arrival order.
//
// All exported methods must be called from the tick loop goroutine. Dialing
// and reading happen on background goroutines that hand results back over
// channels, which Update polls; the manager itself holds no locks.
type Manager struct {
	dial          DialFunc
	clock         clockwork.Clock
	retryInterval time.Duration
	inbound       queue.Queue

	addr       string
	state      ConnectionState
	retryArmed bool
	retryAt    time.Time

	// generation orphans dial results and read errors from torn-down
	// sessions.
	generation int
	sessionID  uuid.UUID
	conn       Conn
	dialCh     chan dialResult
	readErrCh  chan readError
	pending    []Event
}

type dialResult struct {
	generation int
	conn       Conn
	err        error
}

type readError struct {
	generation int
	err        error
}

// NewManagerOptions are the options for creating a new manager.
type NewManagerOptions struct {
	// MessageQueue buffers inbound messages between ticks.
	MessageQueue queue.Queue
	// Dial establishes the transport connection. Defaults to the WebSocket
	// dialer.
	Dial DialFunc
	// Clock drives the retry timer. Defaults to the real clock.
	Clock clockwork.Clock
	// RetryInterval is the flat delay between reconnect attempts.
	RetryInterval time.Duration
}

// NewManager creates a new connection manager.
func NewManager(opts NewManagerOptions) *Manager {
	if opts.MessageQueue == nil {
		opts.MessageQueue = queue.NewInMemoryQueue(queue.DefaultBufferSize)
	}
	if opts.Dial == nil {
		opts.Dial = Dial
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	return &Manager{
		dial:          opts.Dial,
		clock:         opts.Clock,
		retryInterval: opts.RetryInterval,
		inbound:       opts.MessageQueue,
		addr:          DefaultServerAddr,
		dialCh:        make(chan dialResult, 16),
		readErrCh:     make(chan readError, 16),
	}
}

// Connect initiates a connection to addr, or to the last-used address when
// addr is empty. No-op while already connecting or connected. A malformed
// address surfaces as a connection_error event and does not arm the retry
// timer.
func (m *Manager) Connect(addr string) {
	if m.state == StateConnecting || m.state == StateOpen {
		log.Debug("Connect ignored in state %s", m.state)
		return
	}
	if addr != "" {
		m.addr = addr
	}
	if err := validateAddr(m.addr); err != nil {
		m.pending = append(m.pending, Event{Kind: EventConnectionError, Err: err})
		return
	}
	m.retryArmed = true
	m.retryAt = time.Time{}
	m.generation++
	m.sessionID = uuid.New()
	m.state = StateConnecting
	log.Info("Connecting to %s (session %s)", m.addr, m.sessionID)

	generation := m.generation
	target := m.addr
	go func() {
		conn, err := m.dial(target)
		m.dialCh <- dialResult{generation: generation, conn: conn, err: err}
	}()
}

// Disconnect closes the session and disarms the retry timer. Idempotent.
func (m *Manager) Disconnect() {
	m.retryArmed = false
	m.retryAt = time.Time{}
	if m.state == StateDisconnected {
		return
	}
	wasOpen := m.state == StateOpen
	m.state = StateClosing
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.generation++
	m.state = StateDisconnected
	m.inbound.ClearQueue()
	if wasOpen {
		m.pending = append(m.pending, Event{Kind: EventDisconnected})
	}
	log.Info("Disconnected from %s", m.addr)
}

// Send serializes a message and writes it to the transport. Fire-and-forget:
// dropped silently when the session is not open, never queued and never
// blocking.
func (m *Manager) Send(v interface{}) {
	if m.state != StateOpen {
		log.Debug("Dropping outbound message in state %s", m.state)
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to marshal outbound message: %v", err)
		return
	}
	if err := m.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Warn("Failed to write message: %v", err)
	}
}

// Update runs one polling tick: settle any finished dial, drain every
// buffered inbound frame in arrival order, fold in connection loss, then
// check the retry timer. Callers should process the returned messages before
// the events; a reconnect attempt is never initiated in the same tick as a
// backlog drain from the previous session.
func (m *Manager) Update() ([]*messages.Message, []Event) {
	events := m.pending
	m.pending = nil
	events = append(events, m.pollDial()...)
	msgs := m.drainInbound()
	events = append(events, m.pollReadErrors()...)
	m.checkRetry()
	return msgs, events
}

// State returns the connectivity state of the session.
func (m *Manager) State() ConnectionState {
	return m.state
}

// IsConnected reports whether the session is open.
func (m *Manager) IsConnected() bool {
	return m.state == StateOpen
}

// Addr returns the current target address.
func (m *Manager) Addr() string {
	return m.addr
}

// SessionID identifies the current connection attempt in logs.
func (m *Manager) SessionID() uuid.UUID {
	return m.sessionID
}

func (m *Manager) pollDial() []Event {
	select {
	case res := <-m.dialCh:
		if res.generation != m.generation {
			if res.conn != nil {
				res.conn.Close()
			}
			return nil
		}
		if res.err != nil {
			log.Warn("Failed to connect to %s: %v", m.addr, res.err)
			m.state = StateDisconnected
			m.scheduleRetry()
			return []Event{{Kind: EventConnectionError, Err: res.err}}
		}
		if m.state != StateConnecting {
			res.conn.Close()
			return nil
		}
		m.conn = res.conn
		m.state = StateOpen
		go m.readLoop(res.conn, res.generation)
		log.Info("Connected to %s (session %s)", m.addr, m.sessionID)
		return []Event{{Kind: EventConnected}}
	default:
		return nil
	}
}

func (m *Manager) drainInbound() []*messages.Message {
	items := m.inbound.ReadAllMessages()
	if len(items) == 0 {
		return nil
	}
	msgs := make([]*messages.Message, 0, len(items))
	for _, item := range items {
		msg, ok := item.(*messages.Message)
		if !ok {
			log.Error("Unexpected item in inbound queue: %T", item)
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func (m *Manager) pollReadErrors() []Event {
	var events []Event
	for {
		select {
		case re := <-m.readErrCh:
			if re.generation != m.generation || m.state != StateOpen {
				continue
			}
			log.Warn("Connection to %s lost: %v", m.addr, re.err)
			m.conn = nil
			m.state = StateDisconnected
			m.scheduleRetry()
			events = append(events, Event{Kind: EventDisconnected})
		default:
			return events
		}
	}
}

// scheduleRetry arms the fixed-delay timer: flat interval, no backoff, no
// attempt limit.
func (m *Manager) scheduleRetry() {
	if !m.retryArmed {
		return
	}
	m.retryAt = m.clock.Now().Add(m.retryInterval)
	log.Debug("Next connection attempt in %s", m.retryInterval)
}

func (m *Manager) checkRetry() {
	if m.state != StateDisconnected || !m.retryArmed || m.retryAt.IsZero() {
		return
	}
	if m.clock.Now().Before(m.retryAt) {
		return
	}
	m.retryAt = time.Time{}
	m.Connect("")
}

// readLoop pulls frames off the transport and buffers them for the next
// tick. A frame that fails to parse is discarded with a diagnostic and does
// not close the session.
func (m *Manager) readLoop(conn Conn, generation int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case m.readErrCh <- readError{generation: generation, err: err}:
			default:
			}
			return
		}
		msg, err := messages.Parse(data)
		if err != nil {
			log.Warn("Discarding inbound frame: %v", err)
			continue
		}
		if err := m.inbound.Enqueue(msg); err != nil {
			log.Error("Failed to buffer inbound message: %v", err)
		}
	}
}
