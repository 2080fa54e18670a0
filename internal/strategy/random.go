package strategy

import (
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/tictactoe"
)

// Random picks uniformly among the empty cells. It is not safe for concurrent
// use: every player owns its own instance.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (that *Random) Name() string {
	return "Facile"
}

func (that *Random) Description() string {
	return "Joue aléatoirement sans stratégie"
}

func (that *Random) ChooseMove(grid entity.Grid, _ entity.Mark) (entity.Move, error) {
	availableCells := tictactoe.EmptyCells(&grid)
	if len(availableCells) == 0 {
		return entity.Move{}, ErrNoAvailableMoves
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}
