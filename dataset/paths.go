package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

// PreparePath clears the export root and recreates it with one empty
// subdirectory per split.
//
// This is destructive: any previous content at root is removed
// irreversibly. Callers surface this in their user-facing documentation.
func PreparePath(root string, splits []string) error {
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("dataset: clearing export path: %w", err)
	}

	for _, split := range splits {
		if err := os.MkdirAll(filepath.Join(root, split), 0755); err != nil {
			return fmt.Errorf("dataset: creating split directory %q: %w", split, err)
		}
	}
	return nil
}
