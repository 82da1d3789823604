package game

import (
	"sort"

	"github.com/modernart-go/client/pkg/game/types"
)

// GameState is the single authoritative local copy of game state. It is
// mutated only by the Reducer; everything else reads it.
type GameState struct {
	RoomID            string
	IsHost            bool
	LocalPlayerID     string
	LocalPlayerIndex  int // -1 until seated
	Players           []types.Player
	Hand              []types.Card
	Round             int
	CurrentTurnPlayer int // -1 until the server says
	IsMyTurn          bool
	Auction           types.Auction
	BoardCounts       map[string]int
	SettledCounts     map[string]int
	MarketValues      map[string]int
	MyPaintings       []types.Card
	AuctionLog        []types.AuctionLogEntry

	// Carried from the last message of their kind for presentation.
	Rooms           []types.RoomInfo
	PendingDouble   *types.DoubleRequest
	LastError       string
	LastRoundValues map[string]int
	LastEarnings    map[string]int
	WinnerIndex     int
	WinnerName      string
}

// NewGameState creates an empty snapshot.
func NewGameState() *GameState {
	s := &GameState{}
	s.Reset()
	return s
}

// Reset returns the snapshot to its process-start shape. Used when leaving
// the lobby.
func (s *GameState) Reset() {
	*s = GameState{
		LocalPlayerIndex:  -1,
		CurrentTurnPlayer: -1,
		WinnerIndex:       -1,
		BoardCounts:       zeroArtistCounts(),
		SettledCounts:     zeroArtistCounts(),
		MarketValues:      zeroArtistCounts(),
	}
}

// resetForNewGame clears every round- and game-scoped field while keeping
// room membership and local identity.
func (s *GameState) resetForNewGame() {
	s.BoardCounts = zeroArtistCounts()
	s.SettledCounts = zeroArtistCounts()
	s.MarketValues = zeroArtistCounts()
	s.MyPaintings = nil
	s.AuctionLog = nil
	s.Auction = types.Auction{}
	s.PendingDouble = nil
	s.LastError = ""
	s.LastRoundValues = nil
	s.LastEarnings = nil
	s.WinnerIndex = -1
	s.WinnerName = ""
}

// PlayerName returns the seated player's name, or "" for an out-of-range
// index.
func (s *GameState) PlayerName(index int) string {
	if index < 0 || index >= len(s.Players) {
		return ""
	}
	return s.Players[index].Name
}

func zeroArtistCounts() map[string]int {
	m := make(map[string]int, len(types.Artists))
	for _, a := range types.Artists {
		m[a] = 0
	}
	return m
}

// artistCounts copies a server-sent per-artist mapping over a zeroed one so
// every known artist always has an entry.
func artistCounts(src map[string]int) map[string]int {
	m := zeroArtistCounts()
	for artist, count := range src {
		m[artist] = count
	}
	return m
}

// sortHand orders a hand for presentation: canonical artist order, then
// auction type, then card id. The server's order is not authoritative.
func sortHand(hand []types.Card) []types.Card {
	sorted := append([]types.Card(nil), hand...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ra, rb := types.ArtistRank(a.Artist), types.ArtistRank(b.Artist); ra != rb {
			return ra < rb
		}
		if ta, tb := types.AuctionTypeRank(a.AuctionType), types.AuctionTypeRank(b.AuctionType); ta != tb {
			return ta < tb
		}
		return a.ID < b.ID
	})
	return sorted
}
