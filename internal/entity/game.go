package entity

import (
	"errors"
	"fmt"
)

// Size is the board dimension. The Tic-Tac-Toe engine plays on a 3x3 grid.
const Size = 3

// Mark is the symbol occupying a cell.
type Mark byte

const (
	Empty Mark = ' '
	X     Mark = 'X'
	O     Mark = 'O'
)

var ErrInvalidMark = errors.New("invalid mark")

// Opponent returns the other playing mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// IsPlayable reports whether the mark belongs to a player.
func (that Mark) IsPlayable() bool {
	return that == X || that == O
}

func (that Mark) String() string {
	return string(that)
}

// ParseMark converts "X" or "O" (any case) into a Mark.
func ParseMark(value string) (Mark, error) {
	switch value {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, value)
	}
}

// Grid is a detached board state. Being an array, it is copied on assignment.
type Grid [Size][Size]Mark

// NewGrid returns a grid with every cell empty.
func NewGrid() Grid {
	var grid Grid
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = Empty
		}
	}
	return grid
}

// Move is a 0-indexed (row, column) pair.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether both coordinates are within [0, Size).
func (that Move) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Outcome classifies a grid.
type Outcome int

const (
	Ongoing Outcome = iota
	Win
	Draw
)

// Result is derived from the grid every turn and never stored on the board.
type Result struct {
	Outcome Outcome
	Winner  Mark
}

func (that Result) IsTerminal() bool {
	return that.Outcome != Ongoing
}

func (that Result) String() string {
	switch that.Outcome {
	case Win:
		return "win:" + that.Winner.String()
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}
