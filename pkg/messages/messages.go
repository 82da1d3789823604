package messages

import (
	"encoding/json"
	"fmt"
)

// Server message types
const (
	TypeError          = "error"
	TypeRoomCreated    = "room_created"
	TypeRoomJoined     = "room_joined"
	TypeRoomList       = "room_list"
	TypePlayerJoined   = "player_joined"
	TypePlayerLeft     = "player_left"
	TypeGameStarted    = "game_started"
	TypeYourTurn       = "your_turn"
	TypeTurnChanged    = "turn_changed"
	TypeCardPlayed     = "card_played"
	TypeDoubleRequest  = "double_request"
	TypeAuctionStarted = "auction_started"
	TypeBidUpdate      = "bid_update"
	TypeBidConfirmed   = "bid_confirmed"
	TypeAuctionResult  = "auction_result"
	TypeRoundEnded     = "round_ended"
	TypeGameEnded      = "game_ended"
	TypeStateSync      = "state_sync"
)

// Client message types
const (
	TypeCreateRoom     = "create_room"
	TypeJoinRoom       = "join_room"
	TypeListRooms      = "list_rooms"
	TypeStartGame      = "start_game"
	TypeAddAI          = "add_ai"
	TypeRemoveAI       = "remove_ai"
	TypePlayCard       = "play_card"
	TypeBid            = "bid"
	TypePass           = "pass"
	TypeAccept         = "accept"
	TypeSetPrice       = "set_price"
	TypeDoubleResponse = "double_response"
)

// Message represents a single wire frame: a JSON object whose "type" field
// selects behavior. All other fields sit at the top level next to it, so the
// raw frame is retained for payload decoding.
type Message struct {
	Type string
	raw  json.RawMessage
}

// Parse reads the type discriminant out of a wire frame. The frame itself is
// kept so the caller can Decode it into the payload type for the
// discriminant.
func Parse(data []byte) (*Message, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse message: %v", err)
	}
	if envelope.Type == "" {
		return nil, fmt.Errorf("message has no type field")
	}
	return &Message{Type: envelope.Type, raw: append(json.RawMessage(nil), data...)}, nil
}

// Decode unmarshals the full frame into a payload struct.
func (m *Message) Decode(v interface{}) error {
	if err := json.Unmarshal(m.raw, v); err != nil {
		return fmt.Errorf("failed to decode %s message: %v", m.Type, err)
	}
	return nil
}

// Raw returns the frame as received.
func (m *Message) Raw() []byte {
	return m.raw
}
