package supertictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MakeTurn applies one move for the player whose turn it is. The game is
// mutated only when the move passes every check; a rejected move leaves it
// untouched.
func MakeTurn(gameInstance *entity.Game, board, cell int) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, board, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	mark := gameInstance.Turn
	gameInstance.Boards[board][cell] = mark
	gameInstance.MiniWinners[board] = miniResult(gameInstance.Boards[board])

	updateGameStatus(gameInstance, cell)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, board, cell int) error {
	if board < 0 || board > 8 || cell < 0 || cell > 8 {
		return apperror.ErrInvalidCell
	}

	if gameInstance.MiniWinners[board] != entity.EmptyCell {
		return apperror.ErrBoardDecided
	}

	if gameInstance.Boards[board][cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	if gameInstance.ActiveBoard != entity.AnyBoard && gameInstance.ActiveBoard != board {
		return apperror.ErrWrongBoard
	}

	return nil
}

// updateGameStatus - checks the meta-board after a move and either finishes
// the game or routes the opponent to the mini-board matching the played cell.
func updateGameStatus(gameInstance *entity.Game, cell int) {
	switch winner := metaResult(gameInstance.MiniWinners); winner {
	case entity.PlayerX, entity.PlayerO, entity.PlayerTie:
		gameInstance.Winner = winner
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.EmptyCell
	default:
		// The target board may already be decided; then any open board is legal.
		if gameInstance.MiniWinners[cell] != entity.EmptyCell {
			gameInstance.ActiveBoard = entity.AnyBoard
		} else {
			gameInstance.ActiveBoard = cell
		}

		gameInstance.Turn = toggleMark(gameInstance.Turn)
	}
}

func toggleMark(currentMark string) string {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}

// miniResult returns the result of a single mini-board: the winning mark,
// a tie when full with no line, or empty while still open.
func miniResult(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.EmptyCell
		}
	}

	return entity.PlayerTie
}

// metaResult applies the same line rules to the mini-board results.
// Tied mini-boards never form a winning line.
func metaResult(miniWinners [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := miniWinners[combo[0]], miniWinners[combo[1]], miniWinners[combo[2]]
		if (a == entity.PlayerX || a == entity.PlayerO) && a == b && b == c {
			return a
		}
	}

	for _, result := range miniWinners {
		if result == entity.EmptyCell {
			return entity.EmptyCell
		}
	}

	return entity.PlayerTie
}
