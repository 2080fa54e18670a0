// Package arena plays AI against AI, many games at once, and reports the tally.
package arena

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/strategy"
	"github.com/rocketscienceinc/onitama/internal/usecase"
)

var ErrNoGames = errors.New("arena needs at least one game")

type statsRecorder interface {
	RecordWin(ctx context.Context, name string) error
	RecordLoss(ctx context.Context, name string) error
	RecordDraw(ctx context.Context, name string) error
	AddMoves(ctx context.Context, name string, moves int) error
}

type Matchup struct {
	X     strategy.Difficulty
	O     strategy.Difficulty
	Games int
	Seed  uint64
}

// PlayerNames are the ledger names of the two sides, e.g. "IA X (Difficile)".
func (that Matchup) PlayerNames() (string, string) {
	return playerName(entity.X, that.X), playerName(entity.O, that.O)
}

func playerName(mark entity.Mark, difficulty strategy.Difficulty) string {
	return fmt.Sprintf("%s %s (%s)", entity.DefaultAIName, mark, strategy.New(difficulty).Name())
}

type Summary struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (that Summary) Games() int {
	return that.XWins + that.OWins + that.Draws
}

type Arena struct {
	logger  zerolog.Logger
	stats   statsRecorder
	workers int
}

func NewArena(logger zerolog.Logger, stats statsRecorder, workers int) *Arena {
	if workers < 1 {
		workers = 1
	}

	return &Arena{
		logger:  logger.With().Str("component", "arena").Logger(),
		stats:   stats,
		workers: workers,
	}
}

// Run plays matchup.Games independent games; the first failure cancels the rest.
func (that *Arena) Run(ctx context.Context, matchup Matchup) (Summary, error) {
	if matchup.Games < 1 {
		return Summary{}, ErrNoGames
	}

	var xWins, oWins, draws atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(that.workers)

	for game := 0; game < matchup.Games; game++ {
		game := game
		group.Go(func() error {
			result, err := that.play(groupCtx, matchup, uint64(game))
			if err != nil {
				return fmt.Errorf("game %d: %w", game, err)
			}

			switch {
			case result.Outcome == entity.Draw:
				draws.Add(1)
			case result.Winner == entity.X:
				xWins.Add(1)
			default:
				oWins.Add(1)
			}

			return nil
		})
	}

	err := group.Wait()

	summary := Summary{
		XWins: int(xWins.Load()),
		OWins: int(oWins.Load()),
		Draws: int(draws.Load()),
	}

	that.logger.Info().
		Stringer("x", matchup.X).
		Stringer("o", matchup.O).
		Int("x_wins", summary.XWins).
		Int("o_wins", summary.OWins).
		Int("draws", summary.Draws).
		Msg("arena finished")

	return summary, err
}

func (that *Arena) play(ctx context.Context, matchup Matchup, game uint64) (entity.Result, error) {
	xName, oName := matchup.PlayerNames()
	seed := matchup.Seed + 2*game

	first, err := entity.NewAIPlayer(xName, entity.X, strategy.NewSeeded(matchup.X, seed), 0)
	if err != nil {
		return entity.Result{}, err
	}

	second, err := entity.NewAIPlayer(oName, entity.O, strategy.NewSeeded(matchup.O, seed+1), 0)
	if err != nil {
		return entity.Result{}, err
	}

	manager, err := usecase.NewGameManager(that.logger, that.stats, first, second)
	if err != nil {
		return entity.Result{}, err
	}

	return manager.Play(ctx)
}
