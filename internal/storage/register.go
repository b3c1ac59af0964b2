package storage

import (
	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Backend names as accepted by history.backend and --backend.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

func init() {
	registry.Register(BackendSQLite, func(path string) (history.Backend, error) {
		return OpenSQLite(path)
	})
	registry.Register(BackendJSON, func(path string) (history.Backend, error) {
		return OpenJSON(path)
	})
	registry.Register(BackendMemory, func(string) (history.Backend, error) {
		return NewMemory(), nil
	})
}
