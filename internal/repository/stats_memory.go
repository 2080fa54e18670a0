package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

type memoryStats struct {
	mu      sync.RWMutex
	records map[string]*entity.Statistics
}

func NewMemoryStatsRepository() StatsRepository {
	return &memoryStats{
		records: make(map[string]*entity.Statistics),
	}
}

func (that *memoryStats) GetOrCreate(_ context.Context, name string) (*entity.Statistics, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, err := that.getOrCreate(name)
	if err != nil {
		return nil, err
	}

	copied := *record
	return &copied, nil
}

func (that *memoryStats) Add(_ context.Context, name string, delta entity.Statistics) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, err := that.getOrCreate(name)
	if err != nil {
		return err
	}

	record.Wins += delta.Wins
	record.Losses += delta.Losses
	record.Draws += delta.Draws
	record.Moves += delta.Moves

	return nil
}

func (that *memoryStats) Exists(_ context.Context, name string) (bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.records[name]
	return ok, nil
}

func (that *memoryStats) List(_ context.Context) ([]*entity.Statistics, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	list := make([]*entity.Statistics, 0, len(that.records))
	for _, record := range that.records {
		copied := *record
		list = append(list, &copied)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return list, nil
}

func (that *memoryStats) Reset(_ context.Context, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.records[name]; ok {
		that.records[name] = &entity.Statistics{Name: name}
	}

	return nil
}

func (that *memoryStats) Delete(_ context.Context, name string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.records[name]
	delete(that.records, name)

	return ok, nil
}

func (that *memoryStats) DeleteAll(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.records = make(map[string]*entity.Statistics)

	return nil
}

// getOrCreate expects the write lock to be held.
func (that *memoryStats) getOrCreate(name string) (*entity.Statistics, error) {
	if record, ok := that.records[name]; ok {
		return record, nil
	}

	record, err := entity.NewStatistics(name)
	if err != nil {
		return nil, err
	}

	that.records[name] = record

	return record, nil
}
