package types

// Auction is the state of the auction currently on the block. All fields
// are zeroed while Active is false.
type Auction struct {
	Active             bool
	Type               string
	Card               Card
	DoubleCard         *Card
	SellerIndex        int
	CurrentBid         int
	CurrentBidderIndex int
	FixedPrice         int
	CanAct             bool
	IsDouble           bool
}

// AuctionLogEntry is one resolved auction. The log is append-only within a
// game and cleared when a new game starts.
type AuctionLogEntry struct {
	Round       int
	SellerName  string
	WinnerName  string
	Artist      string
	AuctionType string
	Price       int
	NoBuyer     bool
	IsDouble    bool
}
