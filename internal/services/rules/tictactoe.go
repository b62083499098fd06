package rules

import "github.com/duelgrid/duelgrid/internal/model"

// BoardSize is the side length of the tic-tac-toe grid
const BoardSize = 3

// TicTacToe is the reference ruleset: a 3x3 marking board where completing
// any row, column or diagonal wins, and a full board with no line is a draw.
type TicTacToe struct{}

// Ensure TicTacToe implements Ruleset
var _ Ruleset = (*TicTacToe)(nil)

// NewTicTacToe creates the reference ruleset
func NewTicTacToe() *TicTacToe {
	return &TicTacToe{}
}

// Name identifies the ruleset
func (t *TicTacToe) Name() string {
	return "tictactoe"
}

// NewBoard returns an empty 3x3 board
func (t *TicTacToe) NewBoard() model.Board {
	board := make(model.Board, BoardSize)
	for i := range board {
		board[i] = make([]model.Mark, BoardSize)
		for j := range board[i] {
			board[i][j] = model.MarkEmpty
		}
	}
	return board
}

// markFor returns the mark a seat plays with
func markFor(seat model.Seat) model.Mark {
	if seat == model.SeatSecond {
		return model.MarkO
	}
	return model.MarkX
}

// Apply places the seat's mark, then checks all eight lines for a win and
// the whole board for exhaustion. A single move can complete more than one
// line at once; all belong to the mover, so any completed line wins.
func (t *TicTacToe) Apply(board model.Board, seat model.Seat, move model.Move) (Result, error) {
	if !board.InBounds(move.Row, move.Col) {
		return Result{}, model.ErrOutOfBounds
	}
	if board.Get(move.Row, move.Col) != model.MarkEmpty {
		return Result{}, model.ErrCellOccupied
	}

	next := board.Clone()
	next[move.Row][move.Col] = markFor(seat)

	if winningMark := findWinner(next); winningMark != model.MarkEmpty {
		winner := model.SeatFirst
		if winningMark == model.MarkO {
			winner = model.SeatSecond
		}
		return Result{Board: next, Winner: winner}, nil
	}

	if next.Full() {
		return Result{Board: next, Draw: true}, nil
	}

	return Result{Board: next}, nil
}

// findWinner scans the 3 rows, 3 columns and 2 diagonals for three equal
// non-empty marks, returning the mark or MarkEmpty
func findWinner(b model.Board) model.Mark {
	lines := [][3][2]int{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}

	for _, line := range lines {
		first := b.Get(line[0][0], line[0][1])
		if first == model.MarkEmpty {
			continue
		}
		if b.Get(line[1][0], line[1][1]) == first && b.Get(line[2][0], line[2][1]) == first {
			return first
		}
	}
	return model.MarkEmpty
}
