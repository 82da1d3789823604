package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		wantType string
		wantErr  bool
	}{
		{
			name:     "valid frame",
			frame:    `{"type":"your_turn","player_index":2}`,
			wantType: TypeYourTurn,
		},
		{
			name:     "unknown type still parses",
			frame:    `{"type":"telemetry_blob"}`,
			wantType: "telemetry_blob",
		},
		{
			name:    "not json",
			frame:   `hello`,
			wantErr: true,
		},
		{
			name:    "missing type field",
			frame:   `{"player_index":2}`,
			wantErr: true,
		},
		{
			name:    "empty type field",
			frame:   `{"type":""}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse([]byte(tt.frame))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, msg.Type)
			assert.Equal(t, tt.frame, string(msg.Raw()))
		})
	}
}

func TestMessageDecode(t *testing.T) {
	frame := `{"type":"bid_update","player_index":1,"player_name":"bob","amount":700,"can_act":true}`
	msg, err := Parse([]byte(frame))
	require.NoError(t, err)

	payload := &BidUpdate{}
	require.NoError(t, msg.Decode(payload))
	assert.Equal(t, 1, payload.PlayerIndex)
	assert.Equal(t, "bob", payload.PlayerName)
	assert.Equal(t, 700, payload.Amount)
	assert.True(t, payload.CanAct)
}

func TestMessageDecodeKeepsAbsentFieldsNil(t *testing.T) {
	frame := `{"type":"state_sync","round":3}`
	msg, err := Parse([]byte(frame))
	require.NoError(t, err)

	payload := &StateSync{}
	require.NoError(t, msg.Decode(payload))
	require.NotNil(t, payload.Round)
	assert.Equal(t, 3, *payload.Round)
	assert.Nil(t, payload.Hand)
	assert.Nil(t, payload.Players)
	assert.Nil(t, payload.Board)
	assert.Nil(t, payload.YourIndex)
}

func TestOutboundConstructors(t *testing.T) {
	tests := []struct {
		name string
		msg  interface{}
		want string
	}{
		{
			name: "create room",
			msg:  NewCreateRoom("alice"),
			want: `{"type":"create_room","player_name":"alice"}`,
		},
		{
			name: "play card without double",
			msg:  NewPlayCard(2, NoDoubleCard),
			want: `{"type":"play_card","card_index":2,"double_card_index":-1}`,
		},
		{
			name: "bid",
			msg:  NewBid(500),
			want: `{"type":"bid","amount":500}`,
		},
		{
			name: "add ai omits empty difficulty",
			msg:  NewAddAI(""),
			want: `{"type":"add_ai"}`,
		},
		{
			name: "double response",
			msg:  NewDoubleResponse(4),
			want: `{"type":"double_response","card_index":4}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
