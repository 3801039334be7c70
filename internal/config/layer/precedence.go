package layer

// Standard priority levels for configuration layers.
// Higher values override lower values during merging.
const (
	// PriorityBuiltin is the lowest priority, for built-in defaults.
	PriorityBuiltin = 0

	// PriorityFile is for the TOML config file.
	PriorityFile = 100

	// PriorityEnv is for environment variable overrides.
	PriorityEnv = 500

	// PriorityArgs is the highest priority, for command-line flags.
	PriorityArgs = 600
)

// DefaultPriority returns the default priority for a given source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}
