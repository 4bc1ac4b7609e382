package apperror

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")

	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrBoardDecided     = errors.New("mini-board is already decided")
	ErrWrongBoard       = errors.New("move is outside the active mini-board")
	ErrInvalidCell      = errors.New("invalid cell index")
)
