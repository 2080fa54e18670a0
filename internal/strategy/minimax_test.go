package strategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/tictactoe"
)

func TestMinimax_ChooseMove(t *testing.T) {
	t.Run("Takes the centre when it is free", func(t *testing.T) {
		grid := entity.Grid{
			{x, e, e},
			{e, e, e},
			{e, e, e},
		}

		move, err := NewMinimax().ChooseMove(grid, o)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
	})

	t.Run("Completes its own line", func(t *testing.T) {
		// Given: X can win on (0,2), O threatens (1,2)
		grid := entity.Grid{
			{x, x, e},
			{o, o, e},
			{x, e, e},
		}

		move, err := NewMinimax().ChooseMove(grid, x)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Blocks a threat", func(t *testing.T) {
		// Given: X threatens the anti-diagonal
		grid := entity.Grid{
			{o, e, x},
			{e, x, e},
			{e, e, e},
		}

		move, err := NewMinimax().ChooseMove(grid, o)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, move)
	})

	t.Run("Full grid returns an error", func(t *testing.T) {
		_, err := NewMinimax().ChooseMove(fullGrid, x)

		assert.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestSearcher_minimax(t *testing.T) {
	search := searcher{self: x, opponent: o}

	t.Run("Score is independent of whose turn made the line", func(t *testing.T) {
		won := entity.Grid{
			{x, x, x},
			{o, o, e},
			{e, e, e},
		}
		lost := entity.Grid{
			{o, o, o},
			{x, x, e},
			{x, e, e},
		}

		assert.Equal(t, scoreWin, search.minimax(&won, true))
		assert.Equal(t, scoreWin, search.minimax(&won, false))
		assert.Equal(t, scoreLoss, search.minimax(&lost, true))
		assert.Equal(t, scoreLoss, search.minimax(&lost, false))
	})

	t.Run("Full grid without a line is a draw", func(t *testing.T) {
		grid := fullGrid

		assert.Equal(t, scoreDraw, search.minimax(&grid, true))
	})

	t.Run("Empty board is a draw with perfect play", func(t *testing.T) {
		grid := entity.NewGrid()

		assert.Equal(t, scoreDraw, search.minimax(&grid, true))
	})
}

func TestMinimax_SelfPlayAlwaysDraws(t *testing.T) {
	t.Run("from the empty board", func(t *testing.T) {
		board := tictactoe.NewBoard()

		result := playOut(t, board, x, map[entity.Mark]entity.Strategy{x: NewMinimax(), o: NewMinimax()})

		assert.Equal(t, entity.Draw, result.Outcome)
	})

	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			t.Run(fmt.Sprintf("after opening (%d,%d)", row, col), func(t *testing.T) {
				// Given: X opened on an arbitrary cell
				board := tictactoe.NewBoard()
				require.True(t, board.Place(row, col, x))

				// When: both sides continue with minimax
				result := playOut(t, board, o, map[entity.Mark]entity.Strategy{x: NewMinimax(), o: NewMinimax()})

				// Then: nobody wins
				assert.Equal(t, entity.Draw, result.Outcome, "grid %v", board.Snapshot())
			})
		}
	}
}

func TestMinimax_NeverLoses(t *testing.T) {
	opponents := map[string]func(seed uint64) entity.Strategy{
		"random":   func(seed uint64) entity.Strategy { return NewRandom(seed) },
		"tactical": func(seed uint64) entity.Strategy { return NewTactical(NewRandom(seed)) },
	}

	for name, newOpponent := range opponents {
		for _, minimaxMark := range []entity.Mark{x, o} {
			t.Run(fmt.Sprintf("%s vs minimax as %s", name, minimaxMark), func(t *testing.T) {
				for seed := uint64(1); seed <= 40; seed++ {
					board := tictactoe.NewBoard()
					strategies := map[entity.Mark]entity.Strategy{
						minimaxMark:            NewMinimax(),
						minimaxMark.Opponent(): newOpponent(seed),
					}

					result := playOut(t, board, x, strategies)

					assert.False(t, result.Outcome == entity.Win && result.Winner != minimaxMark,
						"seed %d: minimax lost on %v", seed, board.Snapshot())
				}
			})
		}
	}
}
