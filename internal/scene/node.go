package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Node kinds.
const (
	KindPanel    = "panel"
	KindLabel    = "label"
	KindProgress = "progress"
)

// Node is one widget in a scene file.
type Node struct {
	Kind string `toml:"kind" yaml:"kind"`
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`

	X      int `toml:"x" yaml:"x"`
	Y      int `toml:"y" yaml:"y"`
	Width  int `toml:"width,omitempty" yaml:"width,omitempty"`
	Height int `toml:"height,omitempty" yaml:"height,omitempty"`

	// Panel
	Border      bool   `toml:"border,omitempty" yaml:"border,omitempty"`
	Transparent bool   `toml:"transparent,omitempty" yaml:"transparent,omitempty"`
	Children    []Node `toml:"children,omitempty" yaml:"children,omitempty"`

	// Label
	Text string `toml:"text,omitempty" yaml:"text,omitempty"`

	// Progress
	Min   int  `toml:"min,omitempty" yaml:"min,omitempty"`
	Max   int  `toml:"max,omitempty" yaml:"max,omitempty"`
	Value *int `toml:"value,omitempty" yaml:"value,omitempty"`
}

// File is a decoded scene file.
type File struct {
	// Input names the label that receives typed text.
	Input string `toml:"input,omitempty" yaml:"input,omitempty"`
	Root  Node   `toml:"root" yaml:"root"`
}

// Format identifies a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions with no decoder.
var ErrUnknownFormat = errors.New("unknown scene format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ParseError reports a scene file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse scene %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and decodes the scene file at path.
func Load(path string) (File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return File{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading scene file %s: %w", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return File{}, err
	}
	return f, nil
}

// Parse decodes scene data in the given format.
func Parse(data []byte, format Format) (File, error) {
	var f File
	var err error

	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return File{}, &ParseError{Path: "<" + string(format) + ">", Err: err}
	}
	return f, nil
}

// Marshal encodes f in the given format.
func Marshal(f File, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(f)
	case FormatYAML:
		return yaml.Marshal(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
