package session

import (
	"github.com/modernart-go/client/client/network"
	"github.com/modernart-go/client/pkg/game"
	"github.com/modernart-go/client/pkg/log"
	"github.com/modernart-go/client/pkg/messages"
)

// Listener receives one snapshot change notification. Listeners filter on
// the kind themselves.
type Listener func(kind game.ChangeKind)

// EventListener receives connectivity transitions.
type EventListener func(event network.Event)

// Session ties the connection manager to the state reducer. One Update per
// tick drains the inbound stream, applies each message to the snapshot in
// arrival order, and fans out the resulting change notifications.
// Presentation layers subscribe here and send user actions through the
// convenience methods; they never mutate the snapshot.
type Session struct {
	network        *network.Manager
	reducer        *game.Reducer
	listeners      []Listener
	eventListeners []EventListener
}

// New creates a session over the given connection manager.
func New(manager *network.Manager) *Session {
	return &Session{
		network: manager,
		reducer: game.NewReducer(),
	}
}

// OnChange subscribes to snapshot change notifications.
func (s *Session) OnChange(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// OnEvent subscribes to connectivity transitions.
func (s *Session) OnEvent(fn EventListener) {
	s.eventListeners = append(s.eventListeners, fn)
}

// Snapshot returns the current game state. Read-only for callers.
func (s *Session) Snapshot() *game.GameState {
	return s.reducer.State()
}

// Network returns the underlying connection manager.
func (s *Session) Network() *network.Manager {
	return s.network
}

// Update runs one tick: messages are applied oldest first, each to
// completion, before connectivity events are delivered.
func (s *Session) Update() {
	msgs, events := s.network.Update()
	for _, msg := range msgs {
		changes, err := s.reducer.Apply(msg)
		if err != nil {
			log.Error("Failed to apply %s message: %v", msg.Type, err)
			continue
		}
		for _, change := range changes {
			for _, fn := range s.listeners {
				fn(change)
			}
		}
	}
	for _, event := range events {
		for _, fn := range s.eventListeners {
			fn(event)
		}
	}
}

// Connect initiates a connection to the server.
func (s *Session) Connect(addr string) {
	s.network.Connect(addr)
}

// Disconnect closes the connection and stops reconnecting.
func (s *Session) Disconnect() {
	s.network.Disconnect()
}

// Reset clears the snapshot, as when leaving the lobby.
func (s *Session) Reset() {
	s.reducer.Reset()
}

// User actions. All of these are fire-and-forget sends; the snapshot only
// changes when the server answers.

func (s *Session) CreateRoom(playerName string) {
	s.network.Send(messages.NewCreateRoom(playerName))
}

func (s *Session) JoinRoom(roomID, playerName string) {
	s.network.Send(messages.NewJoinRoom(roomID, playerName))
}

func (s *Session) ListRooms() {
	s.network.Send(messages.NewListRooms())
}

func (s *Session) StartGame() {
	s.network.Send(messages.NewStartGame())
}

func (s *Session) AddAI(difficulty string) {
	s.network.Send(messages.NewAddAI(difficulty))
}

func (s *Session) RemoveAI() {
	s.network.Send(messages.NewRemoveAI())
}

func (s *Session) PlayCard(cardIndex int) {
	s.network.Send(messages.NewPlayCard(cardIndex, messages.NoDoubleCard))
}

func (s *Session) PlayDouble(cardIndex, doubleCardIndex int) {
	s.network.Send(messages.NewPlayCard(cardIndex, doubleCardIndex))
}

func (s *Session) Bid(amount int) {
	s.network.Send(messages.NewBid(amount))
}

func (s *Session) Pass() {
	s.network.Send(messages.NewPass())
}

func (s *Session) Accept() {
	s.network.Send(messages.NewAccept())
}

func (s *Session) SetPrice(amount int) {
	s.network.Send(messages.NewSetPrice(amount))
}

// RespondDouble answers a double_request; a negative index declines.
func (s *Session) RespondDouble(cardIndex int) {
	s.network.Send(messages.NewDoubleResponse(cardIndex))
}
