// internal/storage/source/interface.go
package source

import "context"

// Storage is a read-only backend holding trade log files.
type Storage interface {
	// Read retrieves the content stored at path
	Read(ctx context.Context, path string) ([]byte, error)

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}
