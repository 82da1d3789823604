package game

import (
	"github.com/modernart-go/client/pkg/game/types"
	"github.com/modernart-go/client/pkg/log"
	"github.com/modernart-go/client/pkg/messages"
)

// Reducer folds server messages into the snapshot, one message at a time,
// oldest first. The server is ground truth: every mutation is an
// unconditional overwrite of the fields the message specifies, so there is
// no rollback concept.
type Reducer struct {
	state *GameState
}

// NewReducer creates a reducer with an empty snapshot.
func NewReducer() *Reducer {
	return &Reducer{state: NewGameState()}
}

// State returns the snapshot. Callers must treat it as read-only.
func (r *Reducer) State() *GameState {
	return r.state
}

// Reset clears the snapshot, as when leaving the lobby.
func (r *Reducer) Reset() {
	r.state.Reset()
}

// Apply applies one inbound message and reports which parts of the snapshot
// changed. Messages of unrecognized type are ignored, not erred.
func (r *Reducer) Apply(msg *messages.Message) ([]ChangeKind, error) {
	switch msg.Type {
	case messages.TypeRoomCreated:
		return r.applyRoomCreated(msg)
	case messages.TypeRoomJoined:
		return r.applyRoomJoined(msg)
	case messages.TypeRoomList:
		return r.applyRoomList(msg)
	case messages.TypePlayerJoined, messages.TypePlayerLeft:
		return r.applyRosterChange(msg)
	case messages.TypeGameStarted:
		return r.applyGameStarted(msg)
	case messages.TypeYourTurn:
		return r.applyYourTurn(msg)
	case messages.TypeTurnChanged:
		return r.applyTurnChanged(msg)
	case messages.TypeCardPlayed:
		return r.applyCardPlayed(msg)
	case messages.TypeDoubleRequest:
		return r.applyDoubleRequest(msg)
	case messages.TypeAuctionStarted:
		return r.applyAuctionStarted(msg)
	case messages.TypeBidUpdate:
		return r.applyBidUpdate(msg)
	case messages.TypeBidConfirmed:
		return []ChangeKind{ChangeBidConfirmed}, nil
	case messages.TypeAuctionResult:
		return r.applyAuctionResult(msg)
	case messages.TypeRoundEnded:
		return r.applyRoundEnded(msg)
	case messages.TypeGameEnded:
		return r.applyGameEnded(msg)
	case messages.TypeStateSync:
		return r.applyStateSync(msg)
	case messages.TypeError:
		return r.applyError(msg)
	default:
		log.Debug("Ignoring message of unknown type %s", msg.Type)
		return nil, nil
	}
}

func (r *Reducer) applyRoomCreated(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.RoomCreated{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	s.RoomID = payload.RoomID
	s.LocalPlayerID = payload.PlayerID
	s.IsHost = true
	changes := []ChangeKind{ChangeRoom}
	if payload.Players != nil {
		r.replacePlayers(payload.Players)
		changes = append(changes, ChangePlayers)
	}
	return changes, nil
}

func (r *Reducer) applyRoomJoined(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.RoomJoined{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	s.RoomID = payload.RoomID
	s.LocalPlayerID = payload.PlayerID
	s.IsHost = false
	r.replacePlayers(payload.Players)
	return []ChangeKind{ChangeRoom, ChangePlayers}, nil
}

func (r *Reducer) applyRoomList(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.RoomList{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	r.state.Rooms = payload.Rooms
	return []ChangeKind{ChangeRoomList}, nil
}

func (r *Reducer) applyRosterChange(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.PlayerJoined{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	// The server resends the full list on every roster change; it is
	// adopted wholesale, never diffed.
	r.replacePlayers(payload.Players)
	return []ChangeKind{ChangePlayers}, nil
}

func (r *Reducer) applyGameStarted(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.GameStarted{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	s.resetForNewGame()
	r.replacePlayers(payload.Players)
	s.LocalPlayerIndex = payload.YourIndex
	s.Hand = sortHand(payload.Hand)
	s.Round = payload.Round
	s.CurrentTurnPlayer = payload.CurrentTurn
	s.IsMyTurn = s.CurrentTurnPlayer == s.LocalPlayerIndex
	return []ChangeKind{ChangeGameStarted, ChangePlayers, ChangeHand, ChangeTurn}, nil
}

func (r *Reducer) applyYourTurn(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.YourTurn{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	// Explicit directive: this message can arrive before the local index is
	// synchronized, so the flag is set directly rather than recomputed.
	s.CurrentTurnPlayer = payload.PlayerIndex
	s.IsMyTurn = true
	return []ChangeKind{ChangeTurn}, nil
}

func (r *Reducer) applyTurnChanged(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.TurnChanged{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	s.CurrentTurnPlayer = payload.PlayerIndex
	s.IsMyTurn = s.CurrentTurnPlayer == s.LocalPlayerIndex
	return []ChangeKind{ChangeTurn}, nil
}

func (r *Reducer) applyCardPlayed(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.CardPlayed{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	// The server sends the running count; overwrite, never increment.
	r.state.BoardCounts[payload.Artist] = payload.BoardCount
	return []ChangeKind{ChangeBoard}, nil
}

func (r *Reducer) applyDoubleRequest(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.DoubleRequest{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	r.state.PendingDouble = &types.DoubleRequest{
		PlayerIndex: payload.PlayerIndex,
		Artist:      payload.Artist,
	}
	return []ChangeKind{ChangeDoubleRequest}, nil
}

func (r *Reducer) applyAuctionStarted(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.AuctionStarted{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	s.PendingDouble = nil
	s.Auction = types.Auction{
		Active:             true,
		Type:               payload.AuctionType,
		Card:               payload.Card,
		DoubleCard:         payload.DoubleCard,
		SellerIndex:        payload.SellerIndex,
		CurrentBid:         payload.CurrentBid,
		CurrentBidderIndex: -1,
		FixedPrice:         payload.FixedPrice,
		CanAct:             payload.CanAct,
		IsDouble:           payload.DoubleCard != nil,
	}
	return []ChangeKind{ChangeAuction}, nil
}

func (r *Reducer) applyBidUpdate(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.BidUpdate{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	if !s.Auction.Active {
		log.Debug("Dropping bid_update with no auction open")
		return nil, nil
	}
	s.Auction.CurrentBid = payload.Amount
	s.Auction.CurrentBidderIndex = payload.PlayerIndex
	s.Auction.CanAct = payload.CanAct
	return []ChangeKind{ChangeBid}, nil
}

func (r *Reducer) applyAuctionResult(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.AuctionResult{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	auction := s.Auction
	changes := []ChangeKind{ChangeAuctionResult}

	if payload.Players != nil {
		r.replacePlayers(payload.Players)
		changes = append(changes, ChangePlayers)
	}

	artist := payload.Card.Artist
	if artist != "" {
		// Settle the board for this artist: everything played so far has a
		// finished auction now.
		s.SettledCounts[artist] = s.BoardCounts[artist]
		changes = append(changes, ChangeBoard)
		if w := payload.WinnerIndex; w >= 0 && w < len(s.Players) {
			p := &s.Players[w]
			if p.PaintingsByArtist == nil {
				p.PaintingsByArtist = make(map[string]int)
			}
			p.PaintingsByArtist[artist]++
		}
	} else {
		log.Warn("auction_result card has no artist; board not settled")
	}

	if s.LocalPlayerIndex >= 0 && payload.WinnerIndex == s.LocalPlayerIndex {
		s.MyPaintings = append(s.MyPaintings, payload.Card)
		changes = append(changes, ChangePaintings)
	}

	s.AuctionLog = append(s.AuctionLog, types.AuctionLogEntry{
		Round:       s.Round,
		SellerName:  s.PlayerName(auction.SellerIndex),
		WinnerName:  payload.WinnerName,
		Artist:      artist,
		AuctionType: auction.Type,
		Price:       payload.Price,
		NoBuyer:     payload.WinnerIndex == auction.SellerIndex,
		IsDouble:    auction.IsDouble,
	})

	s.Auction = types.Auction{}
	return changes, nil
}

func (r *Reducer) applyRoundEnded(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.RoundEnded{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	changes := []ChangeKind{ChangeRound, ChangeBoard, ChangePaintings}

	if payload.NextRound != nil {
		s.Round = *payload.NextRound
	} else {
		s.Round++
	}
	if payload.Market != nil {
		s.MarketValues = artistCounts(payload.Market)
		changes = append(changes, ChangeMarket)
	}
	if payload.Players != nil {
		r.replacePlayers(payload.Players)
		changes = append(changes, ChangePlayers)
	}
	if payload.NewHand != nil {
		s.Hand = sortHand(*payload.NewHand)
		changes = append(changes, ChangeHand)
	}

	s.BoardCounts = zeroArtistCounts()
	s.SettledCounts = zeroArtistCounts()
	s.MyPaintings = nil
	for i := range s.Players {
		s.Players[i].PaintingsByArtist = nil
	}
	s.LastRoundValues = payload.RoundValues
	s.LastEarnings = payload.Earnings
	return changes, nil
}

func (r *Reducer) applyGameEnded(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.GameEnded{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	changes := []ChangeKind{ChangeGameEnded}
	if payload.Players != nil {
		r.replacePlayers(payload.Players)
		changes = append(changes, ChangePlayers)
	}
	s.WinnerIndex = payload.WinnerIndex
	s.WinnerName = payload.WinnerName
	return changes, nil
}

func (r *Reducer) applyStateSync(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.StateSync{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	s := r.state
	// Field-by-field overwrite: a field absent from the payload keeps its
	// current value. This is the only message allowed to silently correct
	// the local player index.
	if payload.Players != nil {
		r.replacePlayers(*payload.Players)
	}
	if payload.YourIndex != nil {
		s.LocalPlayerIndex = *payload.YourIndex
	}
	if payload.Hand != nil {
		s.Hand = sortHand(*payload.Hand)
	}
	if payload.Round != nil {
		s.Round = *payload.Round
	}
	if payload.Board != nil {
		// No pending-auction information survives a resync: treat the whole
		// board as settled so settled <= board keeps holding.
		s.BoardCounts = artistCounts(*payload.Board)
		s.SettledCounts = artistCounts(*payload.Board)
	}
	if payload.Market != nil {
		s.MarketValues = artistCounts(*payload.Market)
	}
	if payload.MyPaintings != nil {
		s.MyPaintings = append([]types.Card(nil), *payload.MyPaintings...)
	}
	if payload.CurrentTurn != nil {
		s.CurrentTurnPlayer = *payload.CurrentTurn
	}
	if payload.CurrentTurn != nil || payload.YourIndex != nil {
		s.IsMyTurn = s.CurrentTurnPlayer == s.LocalPlayerIndex
	}
	return []ChangeKind{ChangeSynced}, nil
}

func (r *Reducer) applyError(msg *messages.Message) ([]ChangeKind, error) {
	payload := &messages.ServerError{}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	r.state.LastError = payload.Message
	return []ChangeKind{ChangeServerError}, nil
}

// replacePlayers adopts the server's player list wholesale. The derived
// per-player paintings maps survive the replacement when the roster shape is
// unchanged (the mid-game case); the local player index is recomputed from
// the stable player id.
func (r *Reducer) replacePlayers(players []types.Player) {
	s := r.state
	if len(players) == len(s.Players) {
		for i := range players {
			players[i].PaintingsByArtist = s.Players[i].PaintingsByArtist
		}
	}
	s.Players = players
	if s.LocalPlayerID != "" {
		for i, p := range players {
			if p.ID == s.LocalPlayerID {
				s.LocalPlayerIndex = i
				break
			}
		}
	}
}
