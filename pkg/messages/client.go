package messages

// Outbound messages. Each constructor fills in the type discriminant; all of
// them are thin wrappers over the connection manager's send primitive and
// carry no game logic.

type CreateRoom struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name"`
}

func NewCreateRoom(playerName string) *CreateRoom {
	return &CreateRoom{Type: TypeCreateRoom, PlayerName: playerName}
}

type JoinRoom struct {
	Type       string `json:"type"`
	RoomID     string `json:"room_id"`
	PlayerName string `json:"player_name"`
}

func NewJoinRoom(roomID, playerName string) *JoinRoom {
	return &JoinRoom{Type: TypeJoinRoom, RoomID: roomID, PlayerName: playerName}
}

type ListRooms struct {
	Type string `json:"type"`
}

func NewListRooms() *ListRooms {
	return &ListRooms{Type: TypeListRooms}
}

type StartGame struct {
	Type string `json:"type"`
}

func NewStartGame() *StartGame {
	return &StartGame{Type: TypeStartGame}
}

type AddAI struct {
	Type       string `json:"type"`
	Difficulty string `json:"difficulty,omitempty"`
}

func NewAddAI(difficulty string) *AddAI {
	return &AddAI{Type: TypeAddAI, Difficulty: difficulty}
}

type RemoveAI struct {
	Type string `json:"type"`
}

func NewRemoveAI() *RemoveAI {
	return &RemoveAI{Type: TypeRemoveAI}
}

// NoDoubleCard marks a play_card without a second card; the server treats a
// negative index as absent.
const NoDoubleCard = -1

type PlayCard struct {
	Type            string `json:"type"`
	CardIndex       int    `json:"card_index"`
	DoubleCardIndex int    `json:"double_card_index"`
}

func NewPlayCard(cardIndex, doubleCardIndex int) *PlayCard {
	return &PlayCard{Type: TypePlayCard, CardIndex: cardIndex, DoubleCardIndex: doubleCardIndex}
}

type Bid struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

func NewBid(amount int) *Bid {
	return &Bid{Type: TypeBid, Amount: amount}
}

type Pass struct {
	Type string `json:"type"`
}

func NewPass() *Pass {
	return &Pass{Type: TypePass}
}

type Accept struct {
	Type string `json:"type"`
}

func NewAccept() *Accept {
	return &Accept{Type: TypeAccept}
}

type SetPrice struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

func NewSetPrice(amount int) *SetPrice {
	return &SetPrice{Type: TypeSetPrice, Amount: amount}
}

type DoubleResponse struct {
	Type      string `json:"type"`
	CardIndex int    `json:"card_index"`
}

func NewDoubleResponse(cardIndex int) *DoubleResponse {
	return &DoubleResponse{Type: TypeDoubleResponse, CardIndex: cardIndex}
}
