package strategy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

var (
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Difficulty selects one of the three strategies.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

func (that Difficulty) String() string {
	switch that {
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "easy"
	}
}

// ParseDifficulty accepts menu numbers and english or french names.
func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "easy", "facile":
		return Easy, nil
	case "2", "medium", "moyen":
		return Medium, nil
	case "3", "hard", "difficile":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

// New builds the strategy for a difficulty. Anything unknown falls back to Easy.
func New(difficulty Difficulty) entity.Strategy {
	return NewSeeded(difficulty, uint64(time.Now().UnixNano())) //nolint: gosec // it's ok
}

// NewSeeded is New with a fixed seed for the random parts.
func NewSeeded(difficulty Difficulty, seed uint64) entity.Strategy {
	switch difficulty {
	case Medium:
		return NewTactical(NewRandom(seed))
	case Hard:
		return NewMinimax()
	default:
		return NewRandom(seed)
	}
}
