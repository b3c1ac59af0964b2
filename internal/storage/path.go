package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandPath resolves a leading ~ to the user's home directory and creates
// the parent directories of the result.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("storage: empty path")
	}

	// Expand ~ to home directory
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Create parent directories
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return path, nil
}
