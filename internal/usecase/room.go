package usecase

import (
	"time"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

// Conn is the transport-side handle a room slot keeps on one live player
// connection. Sends are fire-and-forget: delivery is never awaited and a
// failed write is the transport's problem, not the room's.
type Conn interface {
	ID() string
	SendJoined(code string, slot int)
	SendStart(game *entity.Game)
	SendUpdate(game *entity.Game)
	SendRematchWaiting()
	SendOpponentLeft()
}

// Room pairs two player slots with a single game. A slot holds a weak
// back-reference to a connection; the room never owns connection lifecycle.
// All fields are guarded by the registry mutex.
type Room struct {
	Code string
	Game *entity.Game

	slots        [2]Conn
	rematchVotes [2]bool

	lastActive time.Time
	holdTimer  *time.Timer
	holdGen    int
}

func newRoom(code string) *Room {
	return &Room{
		Code:       code,
		Game:       entity.NewGame(),
		lastActive: time.Now(),
	}
}

func (that *Room) vacantSlot() (int, bool) {
	for i, conn := range that.slots {
		if conn == nil {
			return i, true
		}
	}

	return 0, false
}

func (that *Room) liveCount() int {
	count := 0
	for _, conn := range that.slots {
		if conn != nil {
			count++
		}
	}

	return count
}

func (that *Room) forEachLive(send func(conn Conn)) {
	for _, conn := range that.slots {
		if conn != nil {
			send(conn)
		}
	}
}

func (that *Room) touch() {
	that.lastActive = time.Now()
}

// cancelHold disarms a pending deletion. Bumping the generation also
// neutralizes a timer callback that already fired but has not yet taken
// the registry lock.
func (that *Room) cancelHold() {
	if that.holdTimer != nil {
		that.holdTimer.Stop()
		that.holdTimer = nil
	}
	that.holdGen++
}

func (that *Room) resetGame() {
	that.Game = entity.NewGame()
	that.rematchVotes = [2]bool{}
}
