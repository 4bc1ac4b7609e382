package supertictactoe

import (
	"testing"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOngoingGame() *entity.Game {
	game := entity.NewGame()
	game.Status = entity.StatusOngoing

	return game
}

func TestMakeTurn(t *testing.T) {
	t.Run("First move routes the opponent", func(t *testing.T) {
		// Given: a fresh ongoing game
		game := newOngoingGame()

		// When: player X plays board 4, cell 0
		err := MakeTurn(game, 4, 0)
		require.NoError(t, err)

		// Then: the cell carries X's mark, the opponent is sent to board 0
		expectedGame := newOngoingGame()
		expectedGame.Boards[4][0] = entity.PlayerX
		expectedGame.ActiveBoard = 0
		expectedGame.Turn = entity.PlayerO

		require.Equal(t, expectedGame, game)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where X has taken the center of board 4
		game := newOngoingGame()
		err := MakeTurn(game, 4, 4)
		require.NoError(t, err)

		snapshot := *game

		// When: player O tries the same cell
		err = MakeTurn(game, 4, 4)

		// Then: an ErrCellOccupied error is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, snapshot, *game)
	})

	t.Run("Error on move outside the active board", func(t *testing.T) {
		// Given: a game whose next move must target board 0
		game := newOngoingGame()
		err := MakeTurn(game, 4, 0)
		require.NoError(t, err)

		snapshot := *game

		// When: player O plays a different board
		err = MakeTurn(game, 4, 1)

		// Then: an ErrWrongBoard error is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrWrongBoard)
		require.Equal(t, snapshot, *game)
	})

	t.Run("Error on decided mini-board", func(t *testing.T) {
		// Given: board 4 already has a result
		game := newOngoingGame()
		game.MiniWinners[4] = entity.PlayerO

		// When: a move targets the decided board
		err := MakeTurn(game, 4, 0)

		// Then: an ErrBoardDecided error is returned
		require.ErrorIs(t, err, apperror.ErrBoardDecided)
	})

	t.Run("Error on out-of-range indices", func(t *testing.T) {
		game := newOngoingGame()

		assert.ErrorIs(t, MakeTurn(game, 9, 0), apperror.ErrInvalidCell)
		assert.ErrorIs(t, MakeTurn(game, -1, 0), apperror.ErrInvalidCell)
		assert.ErrorIs(t, MakeTurn(game, 0, 9), apperror.ErrInvalidCell)
		assert.ErrorIs(t, MakeTurn(game, 0, -1), apperror.ErrInvalidCell)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		// Given: a finished game
		game := newOngoingGame()
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerO

		snapshot := *game

		// When: another move arrives
		err := MakeTurn(game, 0, 0)

		// Then: an ErrGameFinished error is returned and nothing moved
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		require.Equal(t, snapshot, *game)
	})

	t.Run("Winning row decides the mini-board", func(t *testing.T) {
		// Given: X holds cells 0 and 1 of board 0 and may play anywhere
		game := newOngoingGame()
		game.Boards[0][0] = entity.PlayerX
		game.Boards[0][1] = entity.PlayerX

		// When: X completes the top row
		err := MakeTurn(game, 0, 2)
		require.NoError(t, err)

		// Then: board 0 belongs to X and the opponent is routed to board 2
		require.Equal(t, entity.PlayerX, game.MiniWinners[0])
		assert.Equal(t, 2, game.ActiveBoard)
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Empty(t, game.Winner)
	})

	t.Run("Full mini-board with no line is a tie", func(t *testing.T) {
		// Given: board 0 one move away from a drawn position
		game := newOngoingGame()
		game.Boards[0] = [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.EmptyCell,
		}

		// When: X fills the last cell
		err := MakeTurn(game, 0, 8)
		require.NoError(t, err)

		// Then: the mini-board result is a tie and the game continues
		require.Equal(t, entity.PlayerTie, game.MiniWinners[0])
		assert.Empty(t, game.Winner)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Routing falls back to any open board", func(t *testing.T) {
		// Given: the board matching the played cell is already decided
		game := newOngoingGame()
		game.MiniWinners[0] = entity.PlayerO

		// When: X plays cell 0 of board 4
		err := MakeTurn(game, 4, 0)
		require.NoError(t, err)

		// Then: the opponent may play any open board
		require.Equal(t, entity.AnyBoard, game.ActiveBoard)
	})

	t.Run("Third mini-board in a row wins the game", func(t *testing.T) {
		// Given: X owns boards 0 and 1 and is about to take board 2
		game := newOngoingGame()
		game.MiniWinners[0] = entity.PlayerX
		game.MiniWinners[1] = entity.PlayerX
		game.Boards[2][0] = entity.PlayerX
		game.Boards[2][1] = entity.PlayerX

		// When: X completes the top row of board 2
		err := MakeTurn(game, 2, 2)
		require.NoError(t, err)

		// Then: X wins the match and the turn goes dark
		require.Equal(t, entity.PlayerX, game.Winner)
		require.Equal(t, entity.StatusFinished, game.Status)
		assert.Empty(t, game.Turn)

		// Then: no further move mutates the game
		snapshot := *game
		err = MakeTurn(game, 3, 0)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		require.Equal(t, snapshot, *game)
	})

	t.Run("All mini-boards decided with no line is a drawn match", func(t *testing.T) {
		// Given: eight decided boards with no winning line, board 8 about to draw
		game := newOngoingGame()
		game.MiniWinners = [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.EmptyCell,
		}
		game.Boards[8] = [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.EmptyCell,
		}
		game.ActiveBoard = 8

		// When: X fills the last open cell
		err := MakeTurn(game, 8, 8)
		require.NoError(t, err)

		// Then: the match is a draw
		require.Equal(t, entity.PlayerTie, game.Winner)
		require.Equal(t, entity.StatusFinished, game.Status)
	})
}

func TestMiniResult(t *testing.T) {
	t.Run("Column win", func(t *testing.T) {
		board := [9]string{
			entity.PlayerO, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.EmptyCell, entity.EmptyCell,
		}

		require.Equal(t, entity.PlayerO, miniResult(board))
	})

	t.Run("Open board has no result", func(t *testing.T) {
		board := [9]string{entity.PlayerX}

		require.Equal(t, entity.EmptyCell, miniResult(board))
	})
}

func TestMetaResult(t *testing.T) {
	t.Run("Tied boards never form a winning line", func(t *testing.T) {
		// Given: a full row of ties next to an undecided board
		miniWinners := [9]string{
			entity.PlayerTie, entity.PlayerTie, entity.PlayerTie,
			entity.PlayerX, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// Then: the match is still open
		require.Equal(t, entity.EmptyCell, metaResult(miniWinners))
	})

	t.Run("Nine ties draw the match", func(t *testing.T) {
		miniWinners := [9]string{}
		for i := range miniWinners {
			miniWinners[i] = entity.PlayerTie
		}

		require.Equal(t, entity.PlayerTie, metaResult(miniWinners))
	})

	t.Run("Diagonal of one mark wins", func(t *testing.T) {
		miniWinners := [9]string{
			entity.PlayerO, entity.PlayerTie, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.PlayerO,
		}

		require.Equal(t, entity.PlayerO, metaResult(miniWinners))
	})
}
