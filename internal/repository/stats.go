package repository

import (
	"context"

	"github.com/rocketscienceinc/onitama/internal/entity"
)

// StatsRepository stores one Statistics record per player name.
// Implementations are safe for concurrent use.
type StatsRepository interface {
	// GetOrCreate returns the record for name, creating a zero record on first reference.
	GetOrCreate(ctx context.Context, name string) (*entity.Statistics, error)
	// Add increments every counter of name by the matching field of delta.
	Add(ctx context.Context, name string, delta entity.Statistics) error

	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*entity.Statistics, error)

	// Reset zeroes the counters of an existing record; unknown names are ignored.
	Reset(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) (bool, error)
	DeleteAll(ctx context.Context) error
}
