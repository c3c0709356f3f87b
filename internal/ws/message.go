package ws

import (
	"encoding/json"
	"fmt"

	"github.com/vladimirvolkov/freethrow/internal/game"
)

// Client -> Server message types
const (
	MsgKey     uint8 = 0x01
	MsgPointer uint8 = 0x02
	MsgRestart uint8 = 0x03
	MsgPing    uint8 = 0x04
)

// Server -> Client message types
const (
	MsgGameState     uint8 = 0x81
	MsgGameStart     uint8 = 0x82
	MsgGameOver      uint8 = 0x83
	MsgShotResult    uint8 = 0x84
	MsgShotCancelled uint8 = 0x85
	MsgPong          uint8 = 0x86
)

type Message struct {
	Type    uint8           `json:"type"`
	Tick    uint32          `json:"tick"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Streamed reports whether msg belongs to a high-rate stream the server may
// thin out: pings and pointer moves.
func (m Message) Streamed() bool {
	switch m.Type {
	case MsgPing:
		return true
	case MsgPointer:
		p, err := DecodePayload[PointerPayload](m)
		return err == nil && p.Phase == PointerMove
	}
	return false
}

// Pointer phases carried by MsgPointer.
const (
	PointerDown = "down"
	PointerMove = "move"
	PointerUp   = "up"
)

type PointerPayload struct {
	Phase string  `json:"phase"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type PingPayload struct {
	ClientTime uint64 `json:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime"`
	ServerTime uint64 `json:"serverTime"`
}

// CourtPayload is the geometry a client needs to draw the court.
type CourtPayload struct {
	game.Court
	BallRadius float64 `json:"ballRadius"`
}

func NewCourtPayload(c game.Court) CourtPayload {
	return CourtPayload{Court: c, BallRadius: game.BallRadius}
}

type GameStartPayload struct {
	SessionID string       `json:"sessionId"`
	Mode      string       `json:"mode"`
	Nickname  string       `json:"nickname"`
	MaxShots  int          `json:"maxShots"`
	Court     CourtPayload `json:"court"`
}

func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func Decode(data []byte) (Message, error) {
	if len(data) == 0 {
		return Message{}, fmt.Errorf("decode: empty frame")
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode: %w", err)
	}
	return msg, nil
}

// DecodePayload unmarshals the payload of msg into a T.
func DecodePayload[T any](msg Message) (T, error) {
	var out T
	if len(msg.Payload) == 0 {
		return out, fmt.Errorf("empty payload for message type 0x%02x", msg.Type)
	}
	err := json.Unmarshal(msg.Payload, &out)
	return out, err
}

func NewMessage(typ uint8, tick uint32, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: typ, Tick: tick}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:    typ,
		Tick:    tick,
		Payload: json.RawMessage(data),
	}, nil
}
