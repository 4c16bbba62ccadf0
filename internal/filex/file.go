package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateWithDirs creates (or truncates) the file at name, making its parent
// directories first.
func CreateWithDirs(name string) (*os.File, error) {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return f, nil
}
