// Package registry provides a global registry for history backend factories.
// Backends register themselves in init() functions, allowing the CLI and
// config to select one by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/history"
)

// Factory opens a backend at path. The meaning of path is backend specific;
// it may be ignored.
type Factory func(path string) (history.Backend, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", name))
	}
	factories[name] = f
}

// Names returns all registered backend names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]string, 0, len(factories))
	for name := range factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Open creates a backend by name.
// Returns an error if the name is not registered or the factory fails.
func Open(name, path string) (history.Backend, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q (have %v)", name, Names())
	}

	b, err := f(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s backend: %w", name, err)
	}
	return b, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
