package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
)

// User-facing texts for the two join failures; everything else is silent.
const (
	msgRoomNotFound = "Room not found."
	msgRoomFull     = "Room is full."
)

func (that *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws, that.logger)
	defer func() {
		_ = ws.Close()
	}()

	conn.logger.Info("websocket connection established")
	that.readLoop(conn)
}

// readLoop dispatches inbound messages until the connection drops. The
// room association lives here: a code plus slot index, set on create/join.
func (that *Server) readLoop(conn *connection) {
	roomCode := ""
	slot := -1

	defer func() {
		if roomCode != "" {
			that.rooms.Disconnect(roomCode, slot, conn)
		}
		conn.logger.Info("websocket connection closed")
	}()

	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err = json.Unmarshal(raw, &msg); err != nil {
			// Malformed input is noise, not a protocol violation.
			conn.logger.Debug("dropping malformed message", "error", err)
			continue
		}

		switch msg.Type {
		case TypeCreate:
			roomCode = that.rooms.Create(conn)
			slot = 0
			conn.sendCreated(roomCode)

		case TypeJoin:
			code := strings.ToUpper(strings.TrimSpace(msg.Code))

			joinedSlot, err := that.rooms.Join(code, conn)
			if err != nil {
				conn.sendError(joinErrorText(err))
				continue
			}

			roomCode, slot = code, joinedSlot

		case TypeMove:
			if roomCode == "" {
				continue
			}

			// Out-of-turn and illegal moves are expected between two racing
			// client views; they get no reply.
			if err := that.rooms.MakeTurn(roomCode, slot, conn, msg.BoardIndex, msg.CellIndex); err != nil {
				conn.logger.Debug("move rejected", "code", roomCode, "error", err)
			}

		case TypeRematch:
			if roomCode == "" {
				continue
			}

			if err := that.rooms.Rematch(roomCode, slot, conn); err != nil {
				conn.logger.Debug("rematch ignored", "code", roomCode, "error", err)
			}

		default:
			conn.logger.Debug("dropping unknown message type", "type", msg.Type)
		}
	}
}

func joinErrorText(err error) string {
	if errors.Is(err, apperror.ErrRoomFull) {
		return msgRoomFull
	}

	return msgRoomNotFound
}
