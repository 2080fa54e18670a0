package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/onitama/internal/apperror"
	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/strategy"
	"github.com/rocketscienceinc/onitama/internal/usecase"
)

type statsLedger interface {
	RecordWin(ctx context.Context, name string) error
	RecordLoss(ctx context.Context, name string) error
	RecordDraw(ctx context.Context, name string) error
	AddMoves(ctx context.Context, name string, moves int) error

	Get(ctx context.Context, name string) (*entity.Statistics, error)
	Ranking(ctx context.Context) ([]*entity.Statistics, error)
}

type strategist interface {
	Strategy() entity.Strategy
}

// Session runs interactive games on the terminal until the players stop.
type Session struct {
	logger   zerolog.Logger
	view     *View
	prompter *Prompter
	stats    statsLedger
	aiDelay  time.Duration
}

func NewSession(logger zerolog.Logger, view *View, prompter *Prompter, stats statsLedger, aiDelay time.Duration) *Session {
	return &Session{
		logger:   logger.With().Str("component", "console").Logger(),
		view:     view,
		prompter: prompter,
		stats:    stats,
		aiDelay:  aiDelay,
	}
}

// Run returns nil when the players quit, when input ends or when ctx is cancelled.
func (that *Session) Run(ctx context.Context) error {
	that.view.Clear()
	that.view.Title()

	err := that.run(ctx)
	if errors.Is(err, apperror.ErrInputClosed) || errors.Is(err, context.Canceled) {
		that.logger.Debug().Err(err).Msg("session interrupted")
		err = nil
	}

	that.showRanking(context.WithoutCancel(ctx))
	that.view.Message("\nMerci d'avoir joué !")

	return err
}

func (that *Session) run(ctx context.Context) error {
	first, second, err := that.setupPlayers(ctx)
	if err != nil {
		return err
	}

	manager, err := usecase.NewGameManager(that.logger, that.stats, first, second,
		usecase.WithRejectHandler(that.rejected))
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	for {
		if err = that.playGame(ctx, manager); err != nil {
			return err
		}

		again, err := that.prompter.AskRematch(ctx)
		if err != nil {
			return err
		}

		if !again {
			return nil
		}

		manager.Reset()
		that.view.Clear()
	}
}

func (that *Session) setupPlayers(ctx context.Context) (entity.Player, entity.Player, error) {
	mode, err := that.prompter.ChooseMode(ctx)
	if err != nil {
		return nil, nil, err
	}

	name, err := that.prompter.AskName(ctx, "Nom du joueur 1 (X): ", entity.DefaultPlayerOneName)
	if err != nil {
		return nil, nil, err
	}

	first, err := entity.NewHumanPlayer(name, entity.X, that.prompter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create player: %w", err)
	}

	var second entity.Player

	switch mode {
	case HumanVsAI:
		difficulty, err := that.prompter.ChooseDifficulty(ctx)
		if err != nil {
			return nil, nil, err
		}

		second, err = entity.NewAIPlayer(entity.DefaultAIName, entity.O, strategy.New(difficulty), that.aiDelay)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create ai: %w", err)
		}
	default:
		name, err = that.prompter.AskName(ctx, "Nom du joueur 2 (O): ", entity.DefaultPlayerTwoName)
		if err != nil {
			return nil, nil, err
		}

		second, err = entity.NewHumanPlayer(name, entity.O, that.prompter)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create player: %w", err)
		}
	}

	that.logger.Info().
		Str("x", first.Name()).
		Str("o", second.Name()).
		Bool("ai", second.IsAI()).
		Msg("players ready")

	return first, second, nil
}

func (that *Session) playGame(ctx context.Context, manager *usecase.GameManager) error {
	for !manager.IsFinished() {
		player := manager.ActivePlayer()

		that.view.Board(manager.Snapshot())
		that.view.Turn(player)

		if ai, ok := player.(strategist); ok {
			that.view.Thinking(player.Name(), ai.Strategy().Name())
		}

		if _, err := manager.PlayTurn(ctx); err != nil {
			if !manager.IsFinished() {
				return err
			}

			that.logger.Warn().Err(err).Str("game_id", manager.ID()).Msg("stats not recorded")
		}
	}

	that.view.Board(manager.Snapshot())

	if manager.Result().Outcome == entity.Draw {
		that.view.Draw()
		return nil
	}

	winner := manager.ActivePlayer()
	that.view.Victory(winner.Name())

	stats, err := that.stats.Get(ctx, winner.Name())
	if err != nil {
		that.logger.Warn().Err(err).Msg("failed to load winner stats")
		return nil
	}

	that.view.Stats(stats)

	return nil
}

func (that *Session) rejected(player entity.Player, move entity.Move) {
	if player.IsAI() {
		return
	}

	that.view.Error(fmt.Sprintf("Coup %s invalide : case occupée ou hors du plateau.", move))
}

func (that *Session) showRanking(ctx context.Context) {
	ranking, err := that.stats.Ranking(ctx)
	if err != nil {
		that.logger.Warn().Err(err).Msg("failed to load ranking")
		return
	}

	that.view.Ranking(ranking)
}
