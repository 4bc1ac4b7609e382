package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	// AnyBoard means the next move may target any open mini-board.
	AnyBoard = -1
)

// Marks maps a room slot index to the mark that slot plays with.
var Marks = [2]string{PlayerX, PlayerO}

// Game is one match of super tic-tac-toe: nine mini-boards arranged in a
// 3x3 meta-board. A mini-board is won by the usual line rules; the match is
// won by lining up three mini-board results.
type Game struct {
	Boards      [9][9]string `json:"boards"`
	MiniWinners [9]string    `json:"mini_winners"`
	Winner      string       `json:"winner,omitempty"`
	Status      string       `json:"status"`
	Turn        string       `json:"player_turn"`
	ActiveBoard int          `json:"active_board"`
}

func NewGame() *Game {
	return &Game{
		Turn:        PlayerX,
		Status:      StatusWaiting,
		ActiveBoard: AnyBoard,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

// HasMoves reports whether any cell has been played. A joiner entering a
// room with moves on the board is resuming, not starting.
func (that *Game) HasMoves() bool {
	return that.MovesPlayed() > 0
}

func (that *Game) MovesPlayed() int {
	count := 0
	for _, board := range that.Boards {
		for _, cell := range board {
			if cell != EmptyCell {
				count++
			}
		}
	}

	return count
}
