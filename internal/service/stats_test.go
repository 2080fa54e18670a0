package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/onitama/internal/apperror"
	"github.com/rocketscienceinc/onitama/internal/entity"
	"github.com/rocketscienceinc/onitama/internal/repository"
)

var errRedisDown = errors.New("redis down")

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) GetOrCreate(ctx context.Context, name string) (*entity.Statistics, error) {
	args := m.Called(ctx, name)
	stats, _ := args.Get(0).(*entity.Statistics)
	return stats, args.Error(1)
}

func (m *mockStatsRepo) Add(ctx context.Context, name string, delta entity.Statistics) error {
	return m.Called(ctx, name, delta).Error(0)
}

func (m *mockStatsRepo) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockStatsRepo) List(ctx context.Context) ([]*entity.Statistics, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Statistics)
	return list, args.Error(1)
}

func (m *mockStatsRepo) Reset(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockStatsRepo) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockStatsRepo) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newMemoryService() StatsService {
	return NewStatsService(zerolog.Nop(), repository.NewMemoryStatsRepository())
}

func TestStatsService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Records each outcome on the named player", func(t *testing.T) {
		svc := newMemoryService()

		// Given: one game of each outcome
		require.NoError(t, svc.RecordWin(ctx, "Alice"))
		require.NoError(t, svc.RecordLoss(ctx, "Alice"))
		require.NoError(t, svc.RecordDraw(ctx, "Alice"))
		require.NoError(t, svc.AddMoves(ctx, "Alice", 12))

		// When: stats are fetched
		stats, err := svc.Get(ctx, "Alice")

		// Then: every counter moved by one and moves were summed
		require.NoError(t, err)
		assert.Equal(t, &entity.Statistics{Name: "Alice", Wins: 1, Losses: 1, Draws: 1, Moves: 12}, stats)
		assert.Equal(t, 3, stats.GamesPlayed())
		assert.InDelta(t, 4.0, stats.AverageMoves(), 1e-9)
	})

	t.Run("Negative move count is rejected", func(t *testing.T) {
		repo := &mockStatsRepo{}
		svc := NewStatsService(zerolog.Nop(), repo)

		err := svc.AddMoves(ctx, "Alice", -1)

		require.ErrorIs(t, err, apperror.ErrNegativeMoveCount)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		repo := &mockStatsRepo{}
		svc := NewStatsService(zerolog.Nop(), repo)

		repo.On("Add", mock.Anything, "Alice", entity.Statistics{Wins: 1}).
			Return(errRedisDown).
			Once()

		err := svc.RecordWin(ctx, "Alice")

		require.ErrorIs(t, err, errRedisDown)
		repo.AssertExpectations(t)
	})
}

func TestStatsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown player is created lazily", func(t *testing.T) {
		svc := newMemoryService()

		ok, err := svc.Exists(ctx, "Bob")
		require.NoError(t, err)
		require.False(t, ok)

		stats, err := svc.Get(ctx, "Bob")
		require.NoError(t, err)
		assert.Zero(t, stats.GamesPlayed())

		ok, err = svc.Exists(ctx, "Bob")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Empty name is rejected", func(t *testing.T) {
		svc := newMemoryService()

		_, err := svc.Get(ctx, "")

		assert.ErrorIs(t, err, entity.ErrEmptyPlayerName)
	})
}

func TestStatsService_Remove(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	require.NoError(t, svc.RecordWin(ctx, "Alice"))
	require.NoError(t, svc.RecordWin(ctx, "Bob"))

	t.Run("ResetPlayer keeps the player", func(t *testing.T) {
		require.NoError(t, svc.ResetPlayer(ctx, "Alice"))

		stats, err := svc.Get(ctx, "Alice")
		require.NoError(t, err)
		assert.Zero(t, stats.Wins)
	})

	t.Run("Remove drops the player", func(t *testing.T) {
		removed, err := svc.Remove(ctx, "Bob")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = svc.Remove(ctx, "Bob")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("ResetAll clears the ledger", func(t *testing.T) {
		require.NoError(t, svc.ResetAll(ctx))

		count, err := svc.PlayerCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestStatsService_Ranking(t *testing.T) {
	ctx := context.Background()

	t.Run("Orders by wins then name", func(t *testing.T) {
		svc := newMemoryService()

		// Given: Carol 2 wins, Alice and Bob 1 win each, Dave none
		for _, name := range []string{"Carol", "Carol", "Bob", "Alice"} {
			require.NoError(t, svc.RecordWin(ctx, name))
		}
		require.NoError(t, svc.RecordLoss(ctx, "Dave"))

		// When: the ranking is computed
		ranking, err := svc.Ranking(ctx)

		// Then: most wins first, ties in name order
		require.NoError(t, err)
		names := make([]string, 0, len(ranking))
		for _, stats := range ranking {
			names = append(names, stats.Name)
		}
		assert.Equal(t, []string{"Carol", "Alice", "Bob", "Dave"}, names)

		best, err := svc.BestPlayer(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Carol", best.Name)

		count, err := svc.PlayerCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("BestWinRate ignores players without games", func(t *testing.T) {
		svc := newMemoryService()

		// Given: Alice 1/1, Bob 2/4, Zed never played
		require.NoError(t, svc.RecordWin(ctx, "Alice"))
		require.NoError(t, svc.RecordWin(ctx, "Bob"))
		require.NoError(t, svc.RecordWin(ctx, "Bob"))
		require.NoError(t, svc.RecordLoss(ctx, "Bob"))
		require.NoError(t, svc.RecordDraw(ctx, "Bob"))
		_, err := svc.Get(ctx, "Zed")
		require.NoError(t, err)

		best, err := svc.BestWinRate(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Alice", best.Name)
		assert.True(t, math.IsInf(best.WinLossRatio(), 1))
	})

	t.Run("Empty ledger has no best player", func(t *testing.T) {
		svc := newMemoryService()

		_, err := svc.BestPlayer(ctx)
		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)

		_, err = svc.BestWinRate(ctx)
		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})

	t.Run("List failure is wrapped", func(t *testing.T) {
		repo := &mockStatsRepo{}
		svc := NewStatsService(zerolog.Nop(), repo)

		repo.On("List", mock.Anything).Return(nil, errRedisDown).Once()

		_, err := svc.Ranking(ctx)

		require.ErrorIs(t, err, errRedisDown)
		repo.AssertExpectations(t)
	})
}
