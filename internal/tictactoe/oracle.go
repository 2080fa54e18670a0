package tictactoe

import "github.com/rocketscienceinc/onitama/internal/entity"

// WinLines lists every line that wins the game: all rows, all columns and both diagonals.
var WinLines = buildWinLines()

func buildWinLines() [][entity.Size]entity.Move {
	lines := make([][entity.Size]entity.Move, 0, 2*entity.Size+2)

	for i := 0; i < entity.Size; i++ {
		var row, col [entity.Size]entity.Move
		for j := 0; j < entity.Size; j++ {
			row[j] = entity.Move{Row: i, Col: j}
			col[j] = entity.Move{Row: j, Col: i}
		}
		lines = append(lines, row, col)
	}

	var diagonal, antiDiagonal [entity.Size]entity.Move
	for i := 0; i < entity.Size; i++ {
		diagonal[i] = entity.Move{Row: i, Col: i}
		antiDiagonal[i] = entity.Move{Row: i, Col: entity.Size - 1 - i}
	}

	return append(lines, diagonal, antiDiagonal)
}

// HasWinner reports whether mark fills a complete line of grid.
func HasWinner(grid *entity.Grid, mark entity.Mark) bool {
	if !mark.IsPlayable() {
		return false
	}

	for _, line := range WinLines {
		complete := true
		for _, cell := range line {
			if grid[cell.Row][cell.Col] != mark {
				complete = false
				break
			}
		}

		if complete {
			return true
		}
	}

	return false
}

// IsFull reports whether no cell of grid is empty.
func IsFull(grid *entity.Grid) bool {
	for row := range grid {
		for col := range grid[row] {
			if grid[row][col] == entity.Empty {
				return false
			}
		}
	}

	return true
}

// EmptyCells lists the empty cells of grid in row-major order.
func EmptyCells(grid *entity.Grid) []entity.Move {
	cells := make([]entity.Move, 0, entity.Size*entity.Size)
	for row := range grid {
		for col := range grid[row] {
			if grid[row][col] == entity.Empty {
				cells = append(cells, entity.Move{Row: row, Col: col})
			}
		}
	}

	return cells
}

// Evaluate classifies grid. A line for X is checked before a line for O.
func Evaluate(grid *entity.Grid) entity.Result {
	for _, mark := range []entity.Mark{entity.X, entity.O} {
		if HasWinner(grid, mark) {
			return entity.Result{Outcome: entity.Win, Winner: mark}
		}
	}

	if IsFull(grid) {
		return entity.Result{Outcome: entity.Draw}
	}

	return entity.Result{Outcome: entity.Ongoing}
}
