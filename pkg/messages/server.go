package messages

import (
	"github.com/modernart-go/client/pkg/game/types"
)

// Payloads pushed by the server. Fields the server may omit are pointers so
// "absent" and "zero" stay distinguishable where it matters (state_sync,
// round_ended).

type ServerError struct {
	Message string `json:"message"`
}

type RoomCreated struct {
	RoomID   string         `json:"room_id"`
	PlayerID string         `json:"player_id"`
	Players  []types.Player `json:"players"`
}

type RoomJoined struct {
	RoomID   string         `json:"room_id"`
	PlayerID string         `json:"player_id"`
	Players  []types.Player `json:"players"`
}

type RoomList struct {
	Rooms []types.RoomInfo `json:"rooms"`
}

type PlayerJoined struct {
	Players    []types.Player `json:"players"`
	PlayerName string         `json:"player_name"`
}

type PlayerLeft struct {
	Players    []types.Player `json:"players"`
	PlayerName string         `json:"player_name"`
}

type GameStarted struct {
	Hand        []types.Card   `json:"hand"`
	Players     []types.Player `json:"players"`
	YourIndex   int            `json:"your_index"`
	Round       int            `json:"round"`
	CurrentTurn int            `json:"current_turn"`
}

type YourTurn struct {
	PlayerIndex int `json:"player_index"`
}

type TurnChanged struct {
	PlayerIndex int `json:"player_index"`
}

type CardPlayed struct {
	Artist      string `json:"artist"`
	BoardCount  int    `json:"board_count"`
	PlayerIndex int    `json:"player_index"`
	PlayerName  string `json:"player_name"`
	AuctionType string `json:"auction_type"`
	IsDouble    bool   `json:"is_double"`
}

type DoubleRequest struct {
	PlayerIndex int    `json:"player_index"`
	Artist      string `json:"artist"`
}

type AuctionStarted struct {
	AuctionType string      `json:"auction_type"`
	Card        types.Card  `json:"card"`
	SellerIndex int         `json:"seller_index"`
	CurrentBid  int         `json:"current_bid"`
	CanAct      bool        `json:"can_act"`
	FixedPrice  int         `json:"fixed_price"`
	DoubleCard  *types.Card `json:"double_card"`
}

type BidUpdate struct {
	PlayerIndex int    `json:"player_index"`
	PlayerName  string `json:"player_name"`
	Amount      int    `json:"amount"`
	CanAct      bool   `json:"can_act"`
}

type BidConfirmed struct {
	Amount int `json:"amount"`
}

type AuctionResult struct {
	WinnerIndex int            `json:"winner_index"`
	WinnerName  string         `json:"winner_name"`
	Price       int            `json:"price"`
	Card        types.Card     `json:"card"`
	Players     []types.Player `json:"players"`
}

type RoundEnded struct {
	RoundValues map[string]int `json:"round_values"`
	Market      map[string]int `json:"market"`
	Players     []types.Player `json:"players"`
	Earnings    map[string]int `json:"earnings"`
	NextRound   *int           `json:"next_round"`
	NewHand     *[]types.Card  `json:"new_hand"`
}

type GameEnded struct {
	Players     []types.Player `json:"players"`
	WinnerIndex int            `json:"winner_index"`
	WinnerName  string         `json:"winner_name"`
}

type StateSync struct {
	Hand        *[]types.Card   `json:"hand"`
	Players     *[]types.Player `json:"players"`
	Round       *int            `json:"round"`
	Board       *map[string]int `json:"board"`
	Market      *map[string]int `json:"market"`
	MyPaintings *[]types.Card   `json:"my_paintings"`
	CurrentTurn *int            `json:"current_turn"`
	YourIndex   *int            `json:"your_index"`
}
