package websocket

import (
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

// Client -> server message types.
const (
	TypeCreate  = "create"
	TypeJoin    = "join"
	TypeMove    = "move"
	TypeRematch = "rematch"
)

// Server -> client message types.
const (
	TypeCreated        = "created"
	TypeJoined         = "joined"
	TypeError          = "error"
	TypeStart          = "start"
	TypeUpdate         = "update"
	TypeRematchWaiting = "rematch_waiting"
	TypeOpponentLeft   = "opponent_left"
)

// ClientMessage is the flat envelope for everything a client sends. Type
// discriminates; the other fields matter only for the types that use them.
type ClientMessage struct {
	Type       string `json:"type"`
	Code       string `json:"code,omitempty"`
	BoardIndex int    `json:"boardIndex"`
	CellIndex  int    `json:"cellIndex"`
}

// ServerMessage always carries the full game snapshot, never a diff, so the
// client stays a pure renderer of the latest state.
type ServerMessage struct {
	Type      string       `json:"type"`
	Code      string       `json:"code,omitempty"`
	SlotIndex *int         `json:"slotIndex,omitempty"`
	Msg       string       `json:"msg,omitempty"`
	Game      *entity.Game `json:"game,omitempty"`
}
