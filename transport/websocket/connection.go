package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

// connection wraps one websocket peer. Broadcasts arrive from other players'
// read loops, so writes are serialized with a mutex. Sends are fire-and-forget:
// a failed write is logged and otherwise dropped; the read loop will notice
// the dead connection soon enough.
type connection struct {
	id     string
	logger *slog.Logger

	mu sync.Mutex
	ws *websocket.Conn
}

func newConnection(ws *websocket.Conn, logger *slog.Logger) *connection {
	id := uuid.NewString()

	return &connection{
		id:     id,
		logger: logger.With("conn", id),
		ws:     ws,
	}
}

func (that *connection) ID() string {
	return that.id
}

func (that *connection) SendJoined(code string, slot int) {
	that.send(&ServerMessage{Type: TypeJoined, Code: code, SlotIndex: &slot})
}

func (that *connection) SendStart(game *entity.Game) {
	that.send(&ServerMessage{Type: TypeStart, Game: game})
}

func (that *connection) SendUpdate(game *entity.Game) {
	that.send(&ServerMessage{Type: TypeUpdate, Game: game})
}

func (that *connection) SendRematchWaiting() {
	that.send(&ServerMessage{Type: TypeRematchWaiting})
}

func (that *connection) SendOpponentLeft() {
	that.send(&ServerMessage{Type: TypeOpponentLeft})
}

func (that *connection) sendCreated(code string) {
	that.send(&ServerMessage{Type: TypeCreated, Code: code})
}

func (that *connection) sendError(msg string) {
	that.send(&ServerMessage{Type: TypeError, Msg: msg})
}

func (that *connection) send(msg *ServerMessage) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.WriteJSON(msg); err != nil {
		that.logger.Debug("failed to write message", "type", msg.Type, "error", err)
	}
}
