package tictactoe

import "github.com/rocketscienceinc/onitama/internal/entity"

// Board is the live game grid. Place is the only way to occupy a cell.
type Board struct {
	grid entity.Grid
}

func NewBoard() *Board {
	return &Board{grid: entity.NewGrid()}
}

// Reset empties every cell.
func (that *Board) Reset() {
	that.grid = entity.NewGrid()
}

// Place occupies (row, col) with mark. It returns false and leaves the board
// untouched when the cell is out of range or already occupied.
func (that *Board) Place(row, col int, mark entity.Mark) bool {
	move := entity.Move{Row: row, Col: col}
	if !move.InBounds() || !mark.IsPlayable() {
		return false
	}

	if that.grid[row][col] != entity.Empty {
		return false
	}

	that.grid[row][col] = mark

	return true
}

// Snapshot returns a copy of the grid; changing it never affects the board.
func (that *Board) Snapshot() entity.Grid {
	return that.grid
}

func (that *Board) HasWinner(mark entity.Mark) bool {
	return HasWinner(&that.grid, mark)
}

func (that *Board) IsFull() bool {
	return IsFull(&that.grid)
}

// Result classifies the current grid.
func (that *Board) Result() entity.Result {
	return Evaluate(&that.grid)
}

// Occupied counts the non-empty cells.
func (that *Board) Occupied() int {
	return entity.Size*entity.Size - len(EmptyCells(&that.grid))
}
