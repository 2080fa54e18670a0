package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/onitama/internal/apperror"
	"github.com/rocketscienceinc/onitama/internal/entity"
)

type statsRepo interface {
	GetOrCreate(ctx context.Context, name string) (*entity.Statistics, error)
	Add(ctx context.Context, name string, delta entity.Statistics) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*entity.Statistics, error)
	Reset(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) (bool, error)
	DeleteAll(ctx context.Context) error
}

type StatsService interface {
	RecordWin(ctx context.Context, name string) error
	RecordLoss(ctx context.Context, name string) error
	RecordDraw(ctx context.Context, name string) error
	AddMoves(ctx context.Context, name string, moves int) error

	Get(ctx context.Context, name string) (*entity.Statistics, error)
	Exists(ctx context.Context, name string) (bool, error)
	Remove(ctx context.Context, name string) (bool, error)
	ResetPlayer(ctx context.Context, name string) error
	ResetAll(ctx context.Context) error

	PlayerCount(ctx context.Context) (int, error)
	Ranking(ctx context.Context) ([]*entity.Statistics, error)
	BestPlayer(ctx context.Context) (*entity.Statistics, error)
	BestWinRate(ctx context.Context) (*entity.Statistics, error)
}

type statsService struct {
	logger zerolog.Logger
	repo   statsRepo
}

func NewStatsService(logger zerolog.Logger, repo statsRepo) StatsService {
	return &statsService{
		logger: logger.With().Str("component", "stats").Logger(),
		repo:   repo,
	}
}

func (that *statsService) RecordWin(ctx context.Context, name string) error {
	return that.add(ctx, name, entity.Statistics{Wins: 1})
}

func (that *statsService) RecordLoss(ctx context.Context, name string) error {
	return that.add(ctx, name, entity.Statistics{Losses: 1})
}

func (that *statsService) RecordDraw(ctx context.Context, name string) error {
	return that.add(ctx, name, entity.Statistics{Draws: 1})
}

func (that *statsService) AddMoves(ctx context.Context, name string, moves int) error {
	if moves < 0 {
		return fmt.Errorf("%w: %d", apperror.ErrNegativeMoveCount, moves)
	}

	return that.add(ctx, name, entity.Statistics{Moves: moves})
}

func (that *statsService) Get(ctx context.Context, name string) (*entity.Statistics, error) {
	stats, err := that.repo.GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats of %q: %w", name, err)
	}

	return stats, nil
}

func (that *statsService) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := that.repo.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to check stats of %q: %w", name, err)
	}

	return ok, nil
}

func (that *statsService) Remove(ctx context.Context, name string) (bool, error) {
	removed, err := that.repo.Delete(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to remove stats of %q: %w", name, err)
	}

	if removed {
		that.logger.Info().Str("player", name).Msg("stats removed")
	}

	return removed, nil
}

func (that *statsService) ResetPlayer(ctx context.Context, name string) error {
	if err := that.repo.Reset(ctx, name); err != nil {
		return fmt.Errorf("failed to reset stats of %q: %w", name, err)
	}

	return nil
}

func (that *statsService) ResetAll(ctx context.Context) error {
	if err := that.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}

	that.logger.Info().Msg("all stats cleared")

	return nil
}

func (that *statsService) PlayerCount(ctx context.Context) (int, error) {
	list, err := that.list(ctx)
	if err != nil {
		return 0, err
	}

	return len(list), nil
}

// Ranking orders players by wins, most first; ties keep name order.
func (that *statsService) Ranking(ctx context.Context) ([]*entity.Statistics, error) {
	list, err := that.list(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Wins > list[j].Wins
	})

	return list, nil
}

func (that *statsService) BestPlayer(ctx context.Context) (*entity.Statistics, error) {
	ranking, err := that.Ranking(ctx)
	if err != nil {
		return nil, err
	}

	if len(ranking) == 0 {
		return nil, apperror.ErrPlayerNotFound
	}

	return ranking[0], nil
}

// BestWinRate only considers players who have finished at least one game.
func (that *statsService) BestWinRate(ctx context.Context) (*entity.Statistics, error) {
	list, err := that.list(ctx)
	if err != nil {
		return nil, err
	}

	var best *entity.Statistics
	for _, stats := range list {
		if stats.GamesPlayed() == 0 {
			continue
		}

		if best == nil || stats.WinRate() > best.WinRate() {
			best = stats
		}
	}

	if best == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	return best, nil
}

func (that *statsService) add(ctx context.Context, name string, delta entity.Statistics) error {
	if err := that.repo.Add(ctx, name, delta); err != nil {
		return fmt.Errorf("failed to record stats of %q: %w", name, err)
	}

	return nil
}

func (that *statsService) list(ctx context.Context) ([]*entity.Statistics, error) {
	list, err := that.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats: %w", err)
	}

	return list, nil
}
