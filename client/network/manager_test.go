package network

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/modernart-go/client/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	frames chan []byte
	closed chan struct{}

	closeOnce sync.Once
	mu        sync.Mutex
	written   [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		frames: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-c.frames:
		return websocket.TextMessage, data, nil
	case <-c.closed:
		return 0, nil, errors.New("use of closed connection")
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// drop simulates the server side going away.
func (c *fakeConn) drop() {
	c.Close()
}

func (c *fakeConn) sent() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.written...)
}

type dialOutcome struct {
	conn *fakeConn
	err  error
}

// fakeDialer hands out scripted outcomes, then fresh connections once the
// script runs dry.
type fakeDialer struct {
	mu      sync.Mutex
	script  []dialOutcome
	dialed  []*fakeConn
	addrs   []string
	gate    chan struct{}
	blocked bool
}

func (d *fakeDialer) dial(addr string) (Conn, error) {
	if d.blocked {
		<-d.gate
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addrs = append(d.addrs, addr)
	if len(d.script) > 0 {
		out := d.script[0]
		d.script = d.script[1:]
		if out.err != nil {
			return nil, out.err
		}
		d.dialed = append(d.dialed, out.conn)
		return out.conn, nil
	}
	conn := newFakeConn()
	d.dialed = append(d.dialed, conn)
	return conn, nil
}

func (d *fakeDialer) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.addrs)
}

func (d *fakeDialer) lastConn() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.dialed) == 0 {
		return nil
	}
	return d.dialed[len(d.dialed)-1]
}

func newTestManager(dialer *fakeDialer, clock clockwork.Clock) *Manager {
	return NewManager(NewManagerOptions{
		Dial:          dialer.dial,
		Clock:         clock,
		RetryInterval: 3 * time.Second,
	})
}

// pump ticks the manager until the accumulated output satisfies the
// condition, failing the test on timeout.
func pump(t *testing.T, m *Manager, until func(msgs []*messages.Message, events []Event) bool) ([]*messages.Message, []Event) {
	t.Helper()
	var msgs []*messages.Message
	var events []Event
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		tickMsgs, tickEvents := m.Update()
		msgs = append(msgs, tickMsgs...)
		events = append(events, tickEvents...)
		if until(msgs, events) {
			return msgs, events
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for condition; got %d messages, events %v", len(msgs), events)
	return nil, nil
}

func hasEvent(events []Event, kind EventKind) bool {
	return countEvents(events, kind) > 0
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func pushFrame(t *testing.T, conn *fakeConn, frame string) {
	t.Helper()
	select {
	case conn.frames <- []byte(frame):
	case <-time.After(time.Second):
		t.Fatal("fake connection buffer full")
	}
}

func TestManager_ConnectDeliversMessagesInOrder(t *testing.T) {
	dialer := &fakeDialer{}
	m := newTestManager(dialer, clockwork.NewFakeClock())

	m.Connect("ws://example.com/ws")
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	assert.True(t, m.IsConnected())

	conn := dialer.lastConn()
	require.NotNil(t, conn)
	pushFrame(t, conn, `{"type":"room_created","room_id":"AB12","player_id":"p1"}`)
	pushFrame(t, conn, `{"type":"player_joined","players":[],"player_name":"bob"}`)
	pushFrame(t, conn, `{"type":"your_turn","player_index":0}`)

	msgs, _ := pump(t, m, func(msgs []*messages.Message, _ []Event) bool {
		return len(msgs) == 3
	})
	assert.Equal(t, messages.TypeRoomCreated, msgs[0].Type)
	assert.Equal(t, messages.TypePlayerJoined, msgs[1].Type)
	assert.Equal(t, messages.TypeYourTurn, msgs[2].Type)
}

func TestManager_InvalidAddressDoesNotArmRetry(t *testing.T) {
	dialer := &fakeDialer{}
	clock := clockwork.NewFakeClock()
	m := newTestManager(dialer, clock)

	m.Connect("http://example.com")
	_, events := m.Update()
	require.Len(t, events, 1)
	assert.Equal(t, EventConnectionError, events[0].Kind)
	assert.Error(t, events[0].Err)
	assert.Equal(t, StateDisconnected, m.State())
	assert.False(t, m.retryArmed)

	// The retry timer must stay disarmed: no dial ever happens.
	clock.Advance(time.Minute)
	for i := 0; i < 5; i++ {
		m.Update()
	}
	assert.Zero(t, dialer.calls())
}

func TestManager_DialFailureRetriesAfterInterval(t *testing.T) {
	dialer := &fakeDialer{script: []dialOutcome{{err: errors.New("connection refused")}}}
	clock := clockwork.NewFakeClock()
	m := newTestManager(dialer, clock)

	m.Connect("ws://example.com/ws")
	_, events := pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnectionError)
	})
	assert.Equal(t, 1, countEvents(events, EventConnectionError))
	assert.Equal(t, StateDisconnected, m.State())
	assert.Equal(t, 1, dialer.calls())

	clock.Advance(3 * time.Second)
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	assert.Equal(t, 2, dialer.calls())
	assert.Equal(t, "ws://example.com/ws", dialer.addrs[1], "retry reuses the last address")
}

func TestManager_ConnectionLossEmitsOneDisconnectThenOneRedial(t *testing.T) {
	dialer := &fakeDialer{}
	clock := clockwork.NewFakeClock()
	m := newTestManager(dialer, clock)

	m.Connect("ws://example.com/ws")
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	require.Equal(t, 1, dialer.calls())

	dialer.lastConn().drop()
	_, events := pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventDisconnected)
	})
	assert.Equal(t, 1, countEvents(events, EventDisconnected))
	assert.Equal(t, StateDisconnected, m.State())

	// Before the interval elapses nothing dials and no further events fire.
	for i := 0; i < 5; i++ {
		_, more := m.Update()
		assert.Empty(t, more)
	}
	assert.Equal(t, 1, dialer.calls())

	clock.Advance(3 * time.Second)
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	assert.Equal(t, 2, dialer.calls())
	assert.True(t, m.IsConnected())
}

func TestManager_DisconnectClearsRetry(t *testing.T) {
	dialer := &fakeDialer{}
	clock := clockwork.NewFakeClock()
	m := newTestManager(dialer, clock)

	m.Connect("ws://example.com/ws")
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})

	m.Disconnect()
	_, events := m.Update()
	assert.Equal(t, 1, countEvents(events, EventDisconnected))
	assert.Equal(t, StateDisconnected, m.State())

	clock.Advance(time.Minute)
	for i := 0; i < 5; i++ {
		m.Update()
	}
	assert.Equal(t, 1, dialer.calls(), "disconnect must cancel the retry timer")

	// Idempotent.
	m.Disconnect()
	_, events = m.Update()
	assert.Empty(t, events)
}

func TestManager_DisconnectDropsBufferedMessages(t *testing.T) {
	dialer := &fakeDialer{}
	m := newTestManager(dialer, clockwork.NewFakeClock())

	m.Connect("ws://example.com/ws")
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	conn := dialer.lastConn()
	pushFrame(t, conn, `{"type":"your_turn","player_index":0}`)

	// Give the read loop a moment to buffer the frame, then tear down
	// before the next tick drains it.
	time.Sleep(50 * time.Millisecond)
	m.Disconnect()

	msgs, _ := m.Update()
	assert.Empty(t, msgs, "messages buffered before disconnect are dropped")
}

func TestManager_SendDroppedWhenNotOpen(t *testing.T) {
	dialer := &fakeDialer{}
	m := newTestManager(dialer, clockwork.NewFakeClock())

	m.Send(messages.NewBid(500))
	assert.Zero(t, dialer.calls())

	m.Connect("ws://example.com/ws")
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	m.Send(messages.NewBid(500))

	conn := dialer.lastConn()
	require.Len(t, conn.sent(), 1)
	assert.JSONEq(t, `{"type":"bid","amount":500}`, string(conn.sent()[0]))
}

func TestManager_ConnectNoOpWhileConnecting(t *testing.T) {
	dialer := &fakeDialer{gate: make(chan struct{}), blocked: true}
	m := newTestManager(dialer, clockwork.NewFakeClock())

	m.Connect("ws://example.com/ws")
	assert.Equal(t, StateConnecting, m.State())
	m.Connect("ws://example.com/ws")
	m.Connect("ws://other.example.com/ws")

	close(dialer.gate)
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	assert.Equal(t, 1, dialer.calls())
	assert.Equal(t, "ws://example.com/ws", m.Addr())
}

func TestManager_UnparseableFrameIsDropped(t *testing.T) {
	dialer := &fakeDialer{}
	m := newTestManager(dialer, clockwork.NewFakeClock())

	m.Connect("ws://example.com/ws")
	pump(t, m, func(_ []*messages.Message, events []Event) bool {
		return hasEvent(events, EventConnected)
	})
	conn := dialer.lastConn()
	pushFrame(t, conn, `not json at all`)
	pushFrame(t, conn, `{"no_type_field":true}`)
	pushFrame(t, conn, `{"type":"your_turn","player_index":1}`)

	msgs, events := pump(t, m, func(msgs []*messages.Message, _ []Event) bool {
		return len(msgs) == 1
	})
	assert.Equal(t, messages.TypeYourTurn, msgs[0].Type)
	assert.False(t, hasEvent(events, EventDisconnected), "bad frames must not close the session")
	assert.True(t, m.IsConnected())
}

func TestManager_StaleDialResultIsOrphaned(t *testing.T) {
	gate := make(chan struct{})
	dialer := &fakeDialer{gate: gate, blocked: true}
	clock := clockwork.NewFakeClock()
	m := newTestManager(dialer, clock)

	m.Connect("ws://example.com/ws")
	// The user gives up while the dial is still in flight.
	m.Disconnect()
	close(gate)

	// The late dial result must not resurrect the session.
	for i := 0; i < 20; i++ {
		_, events := m.Update()
		assert.False(t, hasEvent(events, EventConnected))
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, StateDisconnected, m.State())
}
