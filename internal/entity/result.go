package entity

import "time"

// GameResult is the write-only summary of a finished match. Rooms stay
// in memory only; results are the one thing worth keeping after the fact.
type GameResult struct {
	RoomCode   string    `json:"room_code"`
	Winner     string    `json:"winner"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
