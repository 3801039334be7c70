// Package layer holds configuration layers and merges them by priority.
//
// Each source of settings (built-in defaults, the config file, the
// environment, command-line flags) becomes one Layer. Higher priority
// layers override values from lower priority layers.
package layer

// Layer is a single source of configuration values.
type Layer struct {
	// Name identifies the layer (e.g., "defaults" or a file path).
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// NewLayerWithData creates a layer holding data. A nil map is replaced
// with an empty one.
func NewLayerWithData(name string, source Source, priority int, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     data,
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents the built-in defaults.
	SourceBuiltin Source = iota
	// SourceFile represents a TOML config file.
	SourceFile
	// SourceEnv represents CELLPANEL_* environment variables.
	SourceEnv
	// SourceArgs represents command-line flags.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "flags"
	default:
		return "unknown"
	}
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = cloneValue(val)
	}
	return dst
}
