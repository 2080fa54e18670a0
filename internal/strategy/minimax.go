package strategy

import (
	"math"

	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/tictactoe"
)

const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// Minimax searches the whole game tree. Without pruning or memoisation this is
// only tractable on the 3x3 board.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) Name() string {
	return "Difficile"
}

func (that *Minimax) Description() string {
	return "Algorithme Minimax - imbattable !"
}

func (that *Minimax) ChooseMove(grid entity.Grid, mark entity.Mark) (entity.Move, error) {
	cells := tictactoe.EmptyCells(&grid)
	if len(cells) == 0 {
		return entity.Move{}, ErrNoAvailableMoves
	}

	// the centre is taken first whenever it is free
	if entity.Size%2 == 1 {
		centre := entity.Move{Row: entity.Size / 2, Col: entity.Size / 2}
		if grid[centre.Row][centre.Col] == entity.Empty {
			return centre, nil
		}
	}

	search := searcher{self: mark, opponent: mark.Opponent()}

	bestScore := math.MinInt
	bestMove := cells[0]
	for _, cell := range cells {
		grid[cell.Row][cell.Col] = mark
		score := search.minimax(&grid, false)
		grid[cell.Row][cell.Col] = entity.Empty

		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove, nil
}

type searcher struct {
	self     entity.Mark
	opponent entity.Mark
}

// minimax scores grid from self's point of view, regardless of whose move made the line.
func (that searcher) minimax(grid *entity.Grid, maximizing bool) int {
	if tictactoe.HasWinner(grid, that.self) {
		return scoreWin
	}

	if tictactoe.HasWinner(grid, that.opponent) {
		return scoreLoss
	}

	cells := tictactoe.EmptyCells(grid)
	if len(cells) == 0 {
		return scoreDraw
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range cells {
			grid[cell.Row][cell.Col] = that.self
			best = max(best, that.minimax(grid, false))
			grid[cell.Row][cell.Col] = entity.Empty
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range cells {
		grid[cell.Row][cell.Col] = that.opponent
		best = min(best, that.minimax(grid, true))
		grid[cell.Row][cell.Col] = entity.Empty
	}
	return best
}
