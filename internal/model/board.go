package model

// Mark is the symbol occupying a board cell
type Mark string

const (
	MarkEmpty Mark = "-"
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// Board is a rectangular grid of marks. Its shape is owned by the ruleset
// that produced it; the session registry treats it as an opaque value.
type Board [][]Mark

// Get returns the mark at the given cell, or MarkEmpty if out of range
func (b Board) Get(row, col int) Mark {
	if row < 0 || row >= len(b) || col < 0 || col >= len(b[row]) {
		return MarkEmpty
	}
	return b[row][col]
}

// InBounds reports whether the cell exists on the board
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(b) && col >= 0 && col < len(b[row])
}

// Full reports whether no empty cell remains
func (b Board) Full() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell == MarkEmpty {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = make([]Mark, len(row))
		copy(out[i], row)
	}
	return out
}
