// Package loader reads configuration sources into nested maps.
//
// Every source produces a map[string]any keyed by section and setting
// name ("render" -> "fps"). Each map becomes one configuration layer.
package loader

import (
	"io"
	"io/fs"
	"os"

	"github.com/dshills/cellpanel/internal/config/layer"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads configuration from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// MapLoader serves a fixed map, such as command-line overrides.
type MapLoader map[string]any

// Load returns a copy of the map.
func (m MapLoader) Load() (map[string]any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return layer.DeepMerge(nil, m), nil
}
