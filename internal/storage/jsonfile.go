package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-snake/internal/history"
)

// HistoryKey is the top-level key of the JSON history document.
const HistoryKey = "snakeGameHistory"

// JSONFile keeps the ranked list in a single JSON document of the form
// {"snakeGameHistory": [...]}. It keeps no journal.
type JSONFile struct {
	path string
}

var _ history.Backend = (*JSONFile)(nil)

// OpenJSON prepares a JSON history file at path. The file itself is only
// created on the first Save.
func OpenJSON(path string) (*JSONFile, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	return &JSONFile{path: path}, nil
}

// Path returns the resolved file location.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the document. A missing file is an empty history.
func (f *JSONFile) Load(_ context.Context) ([]history.Entry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var doc map[string][]history.Entry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: malformed history in %s: %w", f.path, err)
	}
	return doc[HistoryKey], nil
}

// Save writes the document through a temp file and rename, so readers never
// see a partial write.
func (f *JSONFile) Save(_ context.Context, entries []history.Entry) error {
	if entries == nil {
		entries = []history.Entry{}
	}
	data, err := json.MarshalIndent(map[string][]history.Entry{HistoryKey: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (f *JSONFile) Close() error {
	return nil
}
