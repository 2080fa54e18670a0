package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

const (
	statsKeyPrefix = "stats:"
	playersKey     = "stats:players"

	fieldWins   = "wins"
	fieldLosses = "losses"
	fieldDraws  = "draws"
	fieldMoves  = "moves"
)

// dbStats mirrors the hash stored under stats:player:<name>.
type dbStats struct {
	Wins   int `redis:"wins"`
	Losses int `redis:"losses"`
	Draws  int `redis:"draws"`
	Moves  int `redis:"moves"`
}

type redisStats struct {
	client *redis.Client
}

// NewRedisStatsRepository keeps counters in Redis hashes so that several
// processes can share one ledger. Counters are updated with HINCRBY.
func NewRedisStatsRepository(client *redis.Client) StatsRepository {
	return &redisStats{
		client: client,
	}
}

func statsKey(name string) string {
	return statsKeyPrefix + "player:" + name
}

func (that *redisStats) GetOrCreate(ctx context.Context, name string) (*entity.Statistics, error) {
	if _, err := entity.NewStatistics(name); err != nil {
		return nil, err
	}

	key := statsKey(name)

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, playersKey, name)
		for _, field := range []string{fieldWins, fieldLosses, fieldDraws, fieldMoves} {
			pipe.HSetNX(ctx, key, field, 0)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stats: %w", err)
	}

	return that.get(ctx, name)
}

func (that *redisStats) Add(ctx context.Context, name string, delta entity.Statistics) error {
	if _, err := entity.NewStatistics(name); err != nil {
		return err
	}

	key := statsKey(name)

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, playersKey, name)
		pipe.HIncrBy(ctx, key, fieldWins, int64(delta.Wins))
		pipe.HIncrBy(ctx, key, fieldLosses, int64(delta.Losses))
		pipe.HIncrBy(ctx, key, fieldDraws, int64(delta.Draws))
		pipe.HIncrBy(ctx, key, fieldMoves, int64(delta.Moves))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment stats: %w", err)
	}

	return nil
}

func (that *redisStats) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := that.client.SIsMember(ctx, playersKey, name).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check player: %w", err)
	}

	return ok, nil
}

func (that *redisStats) List(ctx context.Context) ([]*entity.Statistics, error) {
	names, err := that.client.SMembers(ctx, playersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	sort.Strings(names)

	list := make([]*entity.Statistics, 0, len(names))
	for _, name := range names {
		record, err := that.get(ctx, name)
		if err != nil {
			return nil, err
		}
		list = append(list, record)
	}

	return list, nil
}

func (that *redisStats) Reset(ctx context.Context, name string) error {
	ok, err := that.Exists(ctx, name)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	err = that.client.HSet(ctx, statsKey(name), fieldWins, 0, fieldLosses, 0, fieldDraws, 0, fieldMoves, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}

	return nil
}

func (that *redisStats) Delete(ctx context.Context, name string) (bool, error) {
	var removed *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.SRem(ctx, playersKey, name)
		pipe.Del(ctx, statsKey(name))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete stats: %w", err)
	}

	return removed.Val() > 0, nil
}

func (that *redisStats) DeleteAll(ctx context.Context) error {
	names, err := that.client.SMembers(ctx, playersKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	keys := make([]string, 0, len(names)+1)
	for _, name := range names {
		keys = append(keys, statsKey(name))
	}
	keys = append(keys, playersKey)

	if err = that.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete stats: %w", err)
	}

	return nil
}

func (that *redisStats) get(ctx context.Context, name string) (*entity.Statistics, error) {
	var stored dbStats
	if err := that.client.HGetAll(ctx, statsKey(name)).Scan(&stored); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &entity.Statistics{
		Name:   name,
		Wins:   stored.Wins,
		Losses: stored.Losses,
		Draws:  stored.Draws,
		Moves:  stored.Moves,
	}, nil
}
