package storage

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/history"
)

// Memory is a process-local backend. Nothing survives a restart.
type Memory struct {
	mu      sync.Mutex
	entries []history.Entry
	games   []history.Entry
}

var (
	_ history.Backend = (*Memory)(nil)
	_ history.Journal = (*Memory)(nil)
)

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) ([]history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}

func (m *Memory) Save(_ context.Context, entries []history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
	return nil
}

func (m *Memory) Append(_ context.Context, e history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.games, func(g history.Entry) bool { return g.ID == e.ID }) {
		return nil
	}
	m.games = append(m.games, e)
	return nil
}

// Stats aggregates the journal the same way the SQLite backend does.
func (m *Memory) Stats(context.Context) ([]history.DifficultyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byDifficulty := make(map[string]*history.DifficultyStats)
	for _, g := range m.games {
		st, ok := byDifficulty[g.Difficulty]
		if !ok {
			st = &history.DifficultyStats{Difficulty: g.Difficulty}
			byDifficulty[g.Difficulty] = st
		}
		st.Games++
		st.Total += g.Score
		st.Best = max(st.Best, g.Score)
		if g.RecordedAt.After(st.LastPlayed) {
			st.LastPlayed = g.RecordedAt
		}
	}

	stats := make([]history.DifficultyStats, 0, len(byDifficulty))
	for _, st := range byDifficulty {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Games != stats[j].Games {
			return stats[i].Games > stats[j].Games
		}
		return stats[i].Difficulty < stats[j].Difficulty
	})
	return stats, nil
}

func (m *Memory) Close() error {
	return nil
}
