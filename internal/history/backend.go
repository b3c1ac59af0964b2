package history

import (
	"context"
)

// Backend persists the ranked history list.
// Load returns an empty list, not an error, when nothing was saved yet.
type Backend interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Close() error
}

// Journal is an optional Backend capability: an unbounded log of every
// recorded game, used for aggregate statistics.
type Journal interface {
	Append(ctx context.Context, e Entry) error
	Stats(ctx context.Context) ([]DifficultyStats, error)
}
