package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

func TestMemoryStats_GetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a zero record on first reference", func(t *testing.T) {
		repo := NewMemoryStatsRepository()

		stats, err := repo.GetOrCreate(ctx, "Alice")

		require.NoError(t, err)
		assert.Equal(t, &entity.Statistics{Name: "Alice"}, stats)

		ok, err := repo.Exists(ctx, "Alice")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Rejects an empty name", func(t *testing.T) {
		repo := NewMemoryStatsRepository()

		_, err := repo.GetOrCreate(ctx, "  ")

		assert.ErrorIs(t, err, entity.ErrEmptyPlayerName)
	})

	t.Run("Returned record is a copy", func(t *testing.T) {
		repo := NewMemoryStatsRepository()

		stats, err := repo.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		stats.Wins = 10

		stored, err := repo.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		assert.Zero(t, stored.Wins)
	})
}

func TestMemoryStats_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Accumulates every counter", func(t *testing.T) {
		repo := NewMemoryStatsRepository()

		// Given: two deltas for the same player
		require.NoError(t, repo.Add(ctx, "Bob", entity.Statistics{Wins: 1, Moves: 3}))
		require.NoError(t, repo.Add(ctx, "Bob", entity.Statistics{Losses: 1, Draws: 2, Moves: 4}))

		// When: the record is read back
		stats, err := repo.GetOrCreate(ctx, "Bob")

		// Then: counters are summed
		require.NoError(t, err)
		want := &entity.Statistics{Name: "Bob", Wins: 1, Losses: 1, Draws: 2, Moves: 7}
		if diff := cmp.Diff(want, stats); diff != "" {
			t.Errorf("stats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Concurrent increments are not lost", func(t *testing.T) {
		repo := NewMemoryStatsRepository()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = repo.Add(ctx, "Carol", entity.Statistics{Wins: 1})
			}()
		}
		wg.Wait()

		stats, err := repo.GetOrCreate(ctx, "Carol")
		require.NoError(t, err)
		assert.Equal(t, 50, stats.Wins)
	})
}

func TestMemoryStats_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStatsRepository()

	for _, name := range []string{"Zoe", "Alice", "Mia"} {
		_, err := repo.GetOrCreate(ctx, name)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, stats := range list {
		names = append(names, stats.Name)
	}
	assert.Equal(t, []string{"Alice", "Mia", "Zoe"}, names)
}

func TestMemoryStats_ResetAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Reset zeroes counters and keeps the player", func(t *testing.T) {
		repo := NewMemoryStatsRepository()
		require.NoError(t, repo.Add(ctx, "Alice", entity.Statistics{Wins: 3, Moves: 9}))

		require.NoError(t, repo.Reset(ctx, "Alice"))

		stats, err := repo.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, &entity.Statistics{Name: "Alice"}, stats)
	})

	t.Run("Reset of an unknown player is a no-op", func(t *testing.T) {
		repo := NewMemoryStatsRepository()

		require.NoError(t, repo.Reset(ctx, "Ghost"))

		ok, err := repo.Exists(ctx, "Ghost")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete reports whether a record existed", func(t *testing.T) {
		repo := NewMemoryStatsRepository()
		_, err := repo.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)

		removed, err := repo.Delete(ctx, "Alice")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, "Alice")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("DeleteAll empties the ledger", func(t *testing.T) {
		repo := NewMemoryStatsRepository()
		for i := 0; i < 3; i++ {
			_, err := repo.GetOrCreate(ctx, fmt.Sprintf("player-%d", i))
			require.NoError(t, err)
		}

		require.NoError(t, repo.DeleteAll(ctx))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
