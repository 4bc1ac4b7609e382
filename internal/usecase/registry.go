package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/pkg"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supertictactoe"
)

const archiveTimeout = 5 * time.Second

// ResultSaver records a finished match. A nil saver disables archiving.
type ResultSaver interface {
	Save(ctx context.Context, result *entity.GameResult) error
}

// Registry owns every live room. One mutex serializes all room and game
// mutation, which stands in for the original's single-threaded event loop:
// a handler's effects are atomic with respect to every other connection
// and to the hold-timer callbacks.
type Registry struct {
	logger  *slog.Logger
	results ResultSaver

	gracePeriod time.Duration
	idleTTL     time.Duration

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry(logger *slog.Logger, results ResultSaver, gracePeriod, idleTTL time.Duration) *Registry {
	return &Registry{
		logger:  logger.With("component", "registry"),
		results: results,

		gracePeriod: gracePeriod,
		idleTTL:     idleTTL,

		rooms: make(map[string]*Room),
	}
}

// Create - allocates a room with the caller in slot 0 and returns its code.
func (that *Registry) Create(conn Conn) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := that.newCode()

	room := newRoom(code)
	room.slots[0] = conn
	that.rooms[code] = room

	that.logger.Info("room created", "code", code, "conn", conn.ID())

	return code
}

// Join - puts the connection into the first vacant slot. A join into a game
// that already has moves is a resume and rebroadcasts the current state; a
// fresh game starts only once both slots hold a live connection.
func (that *Registry) Join(code string, conn Conn) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok {
		return 0, apperror.ErrRoomNotFound
	}

	slot, ok := room.vacantSlot()
	if !ok {
		return 0, apperror.ErrRoomFull
	}

	room.cancelHold()
	room.slots[slot] = conn
	room.touch()

	// The join reply must reach the joiner before any start broadcast.
	conn.SendJoined(code, slot)

	switch {
	case room.Game.HasMoves():
		room.forEachLive(func(c Conn) { c.SendStart(room.Game) })
		that.logger.Info("player resumed", "code", code, "slot", slot, "conn", conn.ID())
	case room.liveCount() == 2:
		room.Game.Status = entity.StatusOngoing
		room.forEachLive(func(c Conn) { c.SendStart(room.Game) })
		that.logger.Info("game started", "code", code)
	default:
		that.logger.Info("player joined, waiting for opponent", "code", code, "slot", slot)
	}

	return slot, nil
}

// MakeTurn - applies a move for the given slot and broadcasts the new state.
// Out-of-turn and illegal moves come back as errors for the caller to drop.
func (that *Registry) MakeTurn(code string, slot int, conn Conn, board, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomForConn(code, slot, conn)
	if err != nil {
		return err
	}

	if room.Game.IsWaiting() {
		return apperror.ErrGameIsNotStarted
	}

	if entity.Marks[slot] != room.Game.Turn {
		return apperror.ErrNotYourTurn
	}

	if err = supertictactoe.MakeTurn(room.Game, board, cell); err != nil {
		return fmt.Errorf("failed make turn: %w", err)
	}

	room.touch()
	room.forEachLive(func(c Conn) { c.SendUpdate(room.Game) })

	if room.Game.IsFinished() {
		that.archive(room)
	}

	return nil
}

// Rematch - registers one vote per slot; the second vote resets the game in
// place and restarts it.
func (that *Registry) Rematch(code string, slot int, conn Conn) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomForConn(code, slot, conn)
	if err != nil {
		return err
	}

	room.rematchVotes[slot] = true
	room.touch()

	if !room.rematchVotes[0] || !room.rematchVotes[1] {
		room.forEachLive(func(c Conn) { c.SendRematchWaiting() })
		return nil
	}

	room.resetGame()
	room.Game.Status = entity.StatusOngoing
	room.forEachLive(func(c Conn) { c.SendStart(room.Game) })

	that.logger.Info("rematch started", "code", code)

	return nil
}

// Disconnect - handles a transport-level close. With the other player still
// connected the room is held for the grace period; with both gone it is
// deleted immediately.
func (that *Registry) Disconnect(code string, slot int, conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomForConn(code, slot, conn)
	if err != nil {
		// A close event racing a reconnect into the same slot must not
		// evict the new connection.
		return
	}

	room.slots[slot] = nil

	if room.liveCount() == 0 {
		room.cancelHold()
		delete(that.rooms, code)
		that.logger.Info("room closed, both players gone", "code", code)
		return
	}

	room.forEachLive(func(c Conn) { c.SendOpponentLeft() })
	room.touch()

	room.holdGen++
	gen := room.holdGen
	room.holdTimer = time.AfterFunc(that.gracePeriod, func() {
		that.expireHold(code, gen)
	})

	that.logger.Info("player left, holding room", "code", code, "slot", slot, "grace", that.gracePeriod)
}

// Delete - removes a room; idempotent.
func (that *Registry) Delete(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok {
		return
	}

	room.cancelHold()
	delete(that.rooms, code)

	that.logger.Info("room deleted", "code", code)
}

// Count returns the number of live rooms.
func (that *Registry) Count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

// Run - keeps the room table from leaking: rooms untouched for the idle TTL
// are reaped, covering rooms whose second player never arrived.
func (that *Registry) Run(ctx context.Context) {
	interval := that.idleTTL / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			that.reapIdle(now)
		}
	}
}

func (that *Registry) reapIdle(now time.Time) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for code, room := range that.rooms {
		if now.Sub(room.lastActive) < that.idleTTL {
			continue
		}

		room.cancelHold()
		delete(that.rooms, code)

		that.logger.Warn("room expired idle", "code", code, "idle-ttl", that.idleTTL)
	}
}

// expireHold fires when the grace period elapses with no reconnection. The
// generation check makes cancellation race-free against a concurrent join.
func (that *Registry) expireHold(code string, gen int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[code]
	if !ok || room.holdGen != gen {
		return
	}

	delete(that.rooms, code)

	that.logger.Info("grace period elapsed, room closed", "code", code)
}

// roomForConn resolves a room and verifies the connection still occupies
// the slot it claims.
func (that *Registry) roomForConn(code string, slot int, conn Conn) (*Room, error) {
	room, ok := that.rooms[code]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	if slot < 0 || slot >= len(room.slots) || room.slots[slot] != conn {
		return nil, apperror.ErrNotYourTurn
	}

	return room, nil
}

// newCode retries until a code unused by any live room comes up; the code
// space dwarfs the concurrent room count, so this terminates quickly.
func (that *Registry) newCode() string {
	for {
		code := pkg.GenerateRoomCode()
		if _, ok := that.rooms[code]; !ok {
			return code
		}
	}
}

// archive records the finished match, fire-and-forget.
func (that *Registry) archive(room *Room) {
	if that.results == nil {
		return
	}

	result := &entity.GameResult{
		RoomCode:   room.Code,
		Winner:     room.Game.Winner,
		Moves:      room.Game.MovesPlayed(),
		FinishedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		if err := that.results.Save(ctx, result); err != nil {
			that.logger.Error("failed to archive result", "code", result.RoomCode, "error", err)
		}
	}()
}
