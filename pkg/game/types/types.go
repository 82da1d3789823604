package types

// The five artists of the 70-card deck, in canonical order. The order breaks
// ties when ranking artists at round end and fixes the hand sort.
const (
	ArtistOrangeTarou = "Orange Tarou"
	ArtistGreenTarou  = "Green Tarou"
	ArtistBlueTarou   = "Blue Tarou"
	ArtistYellowTarou = "Yellow Tarou"
	ArtistRedTarou    = "Red Tarou"
)

// Artists lists all artists in canonical order.
var Artists = []string{
	ArtistOrangeTarou,
	ArtistGreenTarou,
	ArtistBlueTarou,
	ArtistYellowTarou,
	ArtistRedTarou,
}

// Auction types
const (
	AuctionOpen       = "open"
	AuctionOnceAround = "once_around"
	AuctionSealed     = "sealed"
	AuctionFixedPrice = "fixed_price"
	AuctionDouble     = "double"
)

// AuctionTypes lists all auction types in deck order.
var AuctionTypes = []string{
	AuctionOpen,
	AuctionOnceAround,
	AuctionSealed,
	AuctionFixedPrice,
	AuctionDouble,
}

const (
	// StartingMoney is each player's bankroll at game start.
	StartingMoney = 100000
	// MaxRounds is the number of rounds in a game.
	MaxRounds = 4
	// RoundEndCardCount is the board count that ends the round for an artist.
	RoundEndCardCount = 5
	// MaxPlayers is the seat limit per room.
	MaxPlayers = 5
	// MinPlayers is the minimum seats needed to start a game.
	MinPlayers = 3
)

// ArtistRank returns the canonical position of an artist, or len(Artists)
// for an artist the deck does not know.
func ArtistRank(artist string) int {
	for i, a := range Artists {
		if a == artist {
			return i
		}
	}
	return len(Artists)
}

// AuctionTypeRank returns the deck-order position of an auction type, or
// len(AuctionTypes) for an unknown type.
func AuctionTypeRank(auctionType string) int {
	for i, t := range AuctionTypes {
		if t == auctionType {
			return i
		}
	}
	return len(AuctionTypes)
}

// Card is an immutable painting card. Identity is ID; cards are never
// mutated after creation.
type Card struct {
	ID          int    `json:"card_id"`
	Artist      string `json:"artist"`
	AuctionType string `json:"auction_type"`
}

// Player is one seated player as the server reports it. Seating order is
// the player list order; the index is the canonical player identifier.
type Player struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Money          int    `json:"money"`
	HandCount      int    `json:"hand_count"`
	PaintingsCount int    `json:"paintings_count"`
	IsAI           bool   `json:"is_ai"`

	// PaintingsByArtist is derived client-side from auction results; the
	// server only reports the total count.
	PaintingsByArtist map[string]int `json:"-"`
}

// RoomInfo is one entry of a room listing.
type RoomInfo struct {
	RoomID      string `json:"room_id"`
	Host        string `json:"host"`
	PlayerCount int    `json:"player_count"`
	Started     bool   `json:"started"`
}

// DoubleRequest records a pending "add a second card?" prompt.
type DoubleRequest struct {
	PlayerIndex int
	Artist      string
}
