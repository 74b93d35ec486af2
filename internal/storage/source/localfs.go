// internal/storage/source/localfs.go
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalFS implements Storage for the local filesystem. Relative paths are
// resolved against basePath; absolute paths are used as given.
type LocalFS struct {
	basePath string
}

// NewLocalFS creates a LocalFS rooted at basePath. An empty basePath means
// the working directory.
func NewLocalFS(basePath string) *LocalFS {
	return &LocalFS{basePath: basePath}
}

func (l *LocalFS) fullPath(path string) string {
	if filepath.IsAbs(path) || l.basePath == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(l.basePath, path)
}

func (l *LocalFS) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(l.fullPath(path))
}

func (l *LocalFS) Exists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(l.fullPath(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}
