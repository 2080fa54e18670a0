package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultPlayerOneName = "Joueur 1"
	DefaultPlayerTwoName = "Joueur 2"
	DefaultAIName        = "IA"
)

var (
	ErrEmptyPlayerName = errors.New("player name can't be empty")
	ErrNilStrategy     = errors.New("ai player requires a strategy")
	ErrNilMoveReader   = errors.New("human player requires a move reader")
)

// Player is either a human reading moves from an input collaborator or an AI
// delegating to its current strategy.
type Player interface {
	Name() string
	Mark() Mark
	IsAI() bool
	NextMove(ctx context.Context, grid Grid) (Move, error)
}

// Strategy picks a move for mark on a detached grid.
type Strategy interface {
	Name() string
	Description() string
	ChooseMove(grid Grid, mark Mark) (Move, error)
}

// MoveReader supplies moves typed by a human.
type MoveReader interface {
	ReadMove(ctx context.Context, player Player) (Move, error)
}

type basePlayer struct {
	name string
	mark Mark
}

func newBasePlayer(name string, mark Mark) (basePlayer, error) {
	if strings.TrimSpace(name) == "" {
		return basePlayer{}, ErrEmptyPlayerName
	}

	if !mark.IsPlayable() {
		return basePlayer{}, fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	return basePlayer{name: name, mark: mark}, nil
}

func (that *basePlayer) Name() string {
	return that.name
}

func (that *basePlayer) Mark() Mark {
	return that.mark
}

type HumanPlayer struct {
	basePlayer
	input MoveReader
}

func NewHumanPlayer(name string, mark Mark, input MoveReader) (*HumanPlayer, error) {
	base, err := newBasePlayer(name, mark)
	if err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrNilMoveReader
	}

	return &HumanPlayer{basePlayer: base, input: input}, nil
}

func (that *HumanPlayer) IsAI() bool {
	return false
}

func (that *HumanPlayer) NextMove(ctx context.Context, _ Grid) (Move, error) {
	move, err := that.input.ReadMove(ctx, that)
	if err != nil {
		return Move{}, fmt.Errorf("failed to read move: %w", err)
	}

	return move, nil
}

// AIPlayer owns exactly one strategy at a time; SetStrategy swaps it between turns.
type AIPlayer struct {
	basePlayer
	strategy Strategy
	delay    time.Duration
}

func NewAIPlayer(name string, mark Mark, strategy Strategy, delay time.Duration) (*AIPlayer, error) {
	base, err := newBasePlayer(name, mark)
	if err != nil {
		return nil, err
	}

	if strategy == nil {
		return nil, ErrNilStrategy
	}

	return &AIPlayer{basePlayer: base, strategy: strategy, delay: delay}, nil
}

func (that *AIPlayer) IsAI() bool {
	return true
}

func (that *AIPlayer) Strategy() Strategy {
	return that.strategy
}

func (that *AIPlayer) SetStrategy(strategy Strategy) error {
	if strategy == nil {
		return ErrNilStrategy
	}

	that.strategy = strategy

	return nil
}

// NextMove waits for the configured thinking delay, then asks the strategy.
func (that *AIPlayer) NextMove(ctx context.Context, grid Grid) (Move, error) {
	if that.delay > 0 {
		timer := time.NewTimer(that.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Move{}, ctx.Err()
		case <-timer.C:
		}
	}

	move, err := that.strategy.ChooseMove(grid, that.mark)
	if err != nil {
		return Move{}, fmt.Errorf("%s strategy failed: %w", that.strategy.Name(), err)
	}

	return move, nil
}

func (that *AIPlayer) String() string {
	return fmt.Sprintf("%s (IA - %s)", that.name, that.strategy.Name())
}
