package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/history"
)

func TestJSONMissingFileIsEmpty(t *testing.T) {
	f, err := OpenJSON(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("OpenJSON() failed: %v", err)
	}

	entries, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(entries))
	}
}

func TestJSONSaveAndLoad(t *testing.T) {
	f, err := OpenJSON(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("OpenJSON() failed: %v", err)
	}
	ctx := context.Background()

	want := []history.Entry{testEntry("a", 8, "Hard", 0), testEntry("b", 2, "Easy", 1)}
	if err := f.Save(ctx, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].Score != 2 {
		t.Errorf("Unexpected entries: %+v", got)
	}
	if !got[0].RecordedAt.Equal(want[0].RecordedAt) {
		t.Errorf("RecordedAt = %v, want %v", got[0].RecordedAt, want[0].RecordedAt)
	}
}

func TestJSONDocumentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	f, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON() failed: %v", err)
	}
	if err := f.Save(context.Background(), []history.Entry{testEntry("a", 3, "Normal", 0)}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	var doc map[string][]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Saved file is not JSON: %v", err)
	}
	items, ok := doc["snakeGameHistory"]
	if !ok || len(items) != 1 {
		t.Fatalf("Expected one item under snakeGameHistory, got %s", data)
	}
	for _, key := range []string{"id", "score", "difficulty", "date"} {
		if _, ok := items[0][key]; !ok {
			t.Errorf("Saved entry is missing %q", key)
		}
	}
}

func TestJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON() failed: %v", err)
	}
	if _, err := f.Load(context.Background()); err == nil {
		t.Error("Load() should fail on malformed JSON")
	}
}

func TestJSONSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	f, _ := OpenJSON(path)

	if err := f.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	var doc map[string][]history.Entry
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if doc[HistoryKey] == nil {
		t.Error("Empty history should be saved as an empty array")
	}
}
