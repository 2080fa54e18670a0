package strategy

import (
	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/tictactoe"
)

// Tactical wins when it can, blocks when it must, and otherwise defers to its fallback.
type Tactical struct {
	fallback entity.Strategy
}

func NewTactical(fallback entity.Strategy) *Tactical {
	return &Tactical{fallback: fallback}
}

func (that *Tactical) Name() string {
	return "Moyen"
}

func (that *Tactical) Description() string {
	return "Cherche à gagner et bloque l'adversaire"
}

func (that *Tactical) ChooseMove(grid entity.Grid, mark entity.Mark) (entity.Move, error) {
	if move, ok := findWinningMove(&grid, mark); ok {
		return move, nil
	}

	if move, ok := findWinningMove(&grid, mark.Opponent()); ok {
		return move, nil
	}

	return that.fallback.ChooseMove(grid, mark)
}

// findWinningMove returns the first empty cell, row-major, that completes a line for mark.
// Every trial placement is undone before returning.
func findWinningMove(grid *entity.Grid, mark entity.Mark) (entity.Move, bool) {
	for _, cell := range tictactoe.EmptyCells(grid) {
		grid[cell.Row][cell.Col] = mark
		wins := tictactoe.HasWinner(grid, mark)
		grid[cell.Row][cell.Col] = entity.Empty

		if wins {
			return cell, true
		}
	}

	return entity.Move{}, false
}
