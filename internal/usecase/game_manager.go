package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/onitama/internal/apperror"
	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/tictactoe"
)

// maxAIAttempts bounds how often an AI may propose an illegal move in one turn.
const maxAIAttempts = entity.Size * entity.Size

type statsRecorder interface {
	RecordWin(ctx context.Context, name string) error
	RecordLoss(ctx context.Context, name string) error
	RecordDraw(ctx context.Context, name string) error
	AddMoves(ctx context.Context, name string, moves int) error
}

type Option func(*GameManager)

// WithRejectHandler is called whenever a proposed move fails the board's legality check.
func WithRejectHandler(handler func(player entity.Player, move entity.Move)) Option {
	return func(that *GameManager) {
		that.onReject = handler
	}
}

// GameManager drives one game at a time between two players and reports
// finished games to the statistics ledger.
type GameManager struct {
	logger zerolog.Logger
	stats  statsRecorder

	id       uuid.UUID
	board    *tictactoe.Board
	players  [2]entity.Player
	moves    [2]int
	current  int
	result   entity.Result
	onReject func(player entity.Player, move entity.Move)
}

func NewGameManager(logger zerolog.Logger, stats statsRecorder, first, second entity.Player, opts ...Option) (*GameManager, error) {
	if first == nil || second == nil {
		return nil, apperror.ErrInvalidPlayerCount
	}

	if first.Mark() == second.Mark() {
		return nil, fmt.Errorf("%w: both play %s", apperror.ErrDuplicateMark, first.Mark())
	}

	manager := &GameManager{
		logger:   logger.With().Str("component", "game").Logger(),
		stats:    stats,
		board:    tictactoe.NewBoard(),
		players:  [2]entity.Player{first, second},
		onReject: func(entity.Player, entity.Move) {},
	}

	for _, opt := range opts {
		opt(manager)
	}

	manager.Reset()

	return manager, nil
}

// Reset starts a new game with the same players; the first player moves first.
func (that *GameManager) Reset() {
	that.id = uuid.New()
	that.board.Reset()
	that.moves = [2]int{}
	that.current = 0
	that.result = entity.Result{Outcome: entity.Ongoing}

	that.log().Debug().
		Str("x", that.players[0].Name()).
		Str("o", that.players[1].Name()).
		Msg("game started")
}

func (that *GameManager) ID() string {
	return that.id.String()
}

func (that *GameManager) Players() [2]entity.Player {
	return that.players
}

func (that *GameManager) ActivePlayer() entity.Player {
	return that.players[that.current]
}

func (that *GameManager) Snapshot() entity.Grid {
	return that.board.Snapshot()
}

func (that *GameManager) Result() entity.Result {
	return that.result
}

func (that *GameManager) IsFinished() bool {
	return that.result.IsTerminal()
}

// PlayTurn asks the active player for moves until one is legal, then applies it.
// Human players are asked again without limit; an AI that keeps proposing
// illegal moves fails the turn with ErrIllegalAIMove.
func (that *GameManager) PlayTurn(ctx context.Context) (entity.Move, error) {
	if that.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	player := that.ActivePlayer()

	move, err := that.acceptMove(ctx, player)
	if err != nil {
		return entity.Move{}, err
	}

	that.moves[that.current]++
	that.result = that.board.Result()

	that.log().Debug().
		Str("player", player.Name()).
		Stringer("mark", player.Mark()).
		Stringer("move", move).
		Msg("move played")

	if !that.result.IsTerminal() {
		that.current = 1 - that.current
		return move, nil
	}

	that.log().Info().
		Stringer("result", that.result).
		Int("moves", that.board.Occupied()).
		Msg("game finished")

	if err = that.record(ctx); err != nil {
		return move, fmt.Errorf("failed to record game: %w", err)
	}

	return move, nil
}

// Play runs turns until the game ends.
func (that *GameManager) Play(ctx context.Context) (entity.Result, error) {
	for !that.IsFinished() {
		if err := ctx.Err(); err != nil {
			return that.result, err
		}

		if _, err := that.PlayTurn(ctx); err != nil {
			return that.result, err
		}
	}

	return that.result, nil
}

func (that *GameManager) acceptMove(ctx context.Context, player entity.Player) (entity.Move, error) {
	for attempt := 1; ; attempt++ {
		move, err := player.NextMove(ctx, that.board.Snapshot())
		if err != nil {
			return entity.Move{}, fmt.Errorf("failed to get move of %s: %w", player.Name(), err)
		}

		if that.board.Place(move.Row, move.Col, player.Mark()) {
			return move, nil
		}

		that.log().Debug().
			Str("player", player.Name()).
			Stringer("move", move).
			Msg("move rejected")
		that.onReject(player, move)

		if player.IsAI() && attempt >= maxAIAttempts {
			return entity.Move{}, fmt.Errorf("%w: %s after %d attempts", apperror.ErrIllegalAIMove, player.Name(), attempt)
		}
	}
}

// record runs exactly once per finished game.
func (that *GameManager) record(ctx context.Context) error {
	if that.stats == nil {
		return nil
	}

	var errs []error

	switch that.result.Outcome {
	case entity.Win:
		winner, loser := that.players[that.current], that.players[1-that.current]
		errs = append(errs,
			that.stats.RecordWin(ctx, winner.Name()),
			that.stats.RecordLoss(ctx, loser.Name()),
		)
	case entity.Draw:
		for _, player := range that.players {
			errs = append(errs, that.stats.RecordDraw(ctx, player.Name()))
		}
	}

	for i, player := range that.players {
		errs = append(errs, that.stats.AddMoves(ctx, player.Name(), that.moves[i]))
	}

	return errors.Join(errs...)
}

func (that *GameManager) log() *zerolog.Logger {
	logger := that.logger.With().Str("game_id", that.id.String()).Logger()
	return &logger
}
