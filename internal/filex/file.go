package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// PrepareOutput resolves path against the working directory and creates its
// parent directory. It returns the absolute path.
func PrepareOutput(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty output path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return abs, nil
}
