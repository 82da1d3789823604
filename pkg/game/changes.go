package game

// ChangeKind names one kind of snapshot change produced by applying a server
// message. Subscribers filter on it instead of registering per-message-type
// callbacks.
type ChangeKind int

const (
	ChangeRoom ChangeKind = iota
	ChangeRoomList
	ChangePlayers
	ChangeGameStarted
	ChangeHand
	ChangeTurn
	ChangeBoard
	ChangeDoubleRequest
	ChangeAuction
	ChangeBid
	ChangeBidConfirmed
	ChangeAuctionResult
	ChangeRound
	ChangeMarket
	ChangePaintings
	ChangeGameEnded
	ChangeSynced
	ChangeServerError
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRoom:
		return "room"
	case ChangeRoomList:
		return "room_list"
	case ChangePlayers:
		return "players"
	case ChangeGameStarted:
		return "game_started"
	case ChangeHand:
		return "hand"
	case ChangeTurn:
		return "turn"
	case ChangeBoard:
		return "board"
	case ChangeDoubleRequest:
		return "double_request"
	case ChangeAuction:
		return "auction"
	case ChangeBid:
		return "bid"
	case ChangeBidConfirmed:
		return "bid_confirmed"
	case ChangeAuctionResult:
		return "auction_result"
	case ChangeRound:
		return "round"
	case ChangeMarket:
		return "market"
	case ChangePaintings:
		return "paintings"
	case ChangeGameEnded:
		return "game_ended"
	case ChangeSynced:
		return "synced"
	case ChangeServerError:
		return "server_error"
	}
	return "unknown"
}
