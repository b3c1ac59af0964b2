package storage

import (
	"context"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	entries := []history.Entry{testEntry("a", 5, "Easy", 0)}
	if err := m.Save(ctx, entries); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	entries[0].Score = 99

	got, _ := m.Load(ctx)
	if len(got) != 1 || got[0].Score != 5 {
		t.Errorf("Memory backend should copy on save, got %+v", got)
	}
}

func TestMemoryStatsMatchesSQLite(t *testing.T) {
	m := NewMemory()
	db := openTestDB(t)
	ctx := context.Background()

	games := []history.Entry{
		testEntry("1", 2, "Easy", 1),
		testEntry("2", 6, "Hard", 2),
		testEntry("3", 4, "Easy", 3),
	}
	for _, g := range games {
		m.Append(ctx, g)
		db.Append(ctx, g)
	}

	fromMemory, _ := m.Stats(ctx)
	fromSQLite, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(fromMemory) != len(fromSQLite) {
		t.Fatalf("Got %d and %d groups", len(fromMemory), len(fromSQLite))
	}
	for i := range fromMemory {
		a, b := fromMemory[i], fromSQLite[i]
		if a.Difficulty != b.Difficulty || a.Games != b.Games || a.Best != b.Best || a.Total != b.Total || !a.LastPlayed.Equal(b.LastPlayed) {
			t.Errorf("Group %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestBackendsRegistered(t *testing.T) {
	for _, name := range []string{BackendSQLite, BackendJSON, BackendMemory} {
		if !registry.Exists(name) {
			t.Errorf("Backend %q is not registered", name)
		}
	}

	b, err := registry.Open(BackendMemory, "")
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	defer b.Close()
	if _, ok := b.(history.Journal); !ok {
		t.Error("Memory backend should keep a journal")
	}
}
