package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/cellpanel/internal/config/layer"
	"github.com/dshills/cellpanel/internal/config/loader"
	"github.com/dshills/cellpanel/internal/config/registry"
	"github.com/dshills/cellpanel/internal/renderer/core"
)

// Config is the merged, typed configuration.
type Config struct {
	Grid    GridConfig
	Render  RenderConfig
	Colors  ColorsConfig
	Font    FontConfig
	Logging LoggingConfig
	Scene   SceneConfig
	Script  ScriptConfig

	// Sources names the layers that contributed, lowest priority first.
	Sources []string

	layers *layer.Manager
}

// GridConfig is the character grid used by headless output.
type GridConfig struct {
	Columns int
	Rows    int
}

// RenderConfig controls the frame loop.
type RenderConfig struct {
	FPS int
}

// ColorsConfig holds "#rrggbb" colors, or "default", and the text
// attributes applied to every cell.
type ColorsConfig struct {
	Foreground string
	Background string
	// Attributes lists text attributes such as "bold, reverse".
	Attributes string
}

// ForegroundColor parses the foreground color.
func (c ColorsConfig) ForegroundColor() (core.Color, error) {
	return core.ColorFromHex(c.Foreground)
}

// BackgroundColor parses the background color.
func (c ColorsConfig) BackgroundColor() (core.Color, error) {
	return core.ColorFromHex(c.Background)
}

// Style returns the cell style for the configured colors.
func (c ColorsConfig) Style() (core.Style, error) {
	fg, err := c.ForegroundColor()
	if err != nil {
		return core.Style{}, err
	}
	bg, err := c.BackgroundColor()
	if err != nil {
		return core.Style{}, err
	}
	attrs, err := core.ParseAttributes(c.Attributes)
	if err != nil {
		return core.Style{}, err
	}
	return core.DefaultStyle().WithForeground(fg).WithBackground(bg).WithAttributes(attrs), nil
}

// FontConfig selects the glyph atlas and cell geometry of PNG output.
// An empty Atlas means the built-in 7x13 face.
type FontConfig struct {
	Atlas       string
	Charset     string
	CellWidth   int
	CellHeight  int
	LineSpacing int
	Margin      int
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
	File  string
}

// SceneConfig selects the scene file.
type SceneConfig struct {
	Path  string
	Watch bool
	// Input overrides the input label named by the scene file.
	Input string
}

// ScriptConfig selects the Lua script.
type ScriptConfig struct {
	Path    string
	Timeout time.Duration
}

// Option configures Load.
type Option func(*options)

type options struct {
	file      string
	env       loader.Loader
	overrides map[string]any
}

// WithFile adds a TOML file layer. The file must exist.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithEnv replaces the environment layer; nil disables it.
func WithEnv(l loader.Loader) Option {
	return func(o *options) {
		o.env = l
	}
}

// WithOverrides adds the highest-priority layer, e.g. from flags.
// Keys are dotted setting paths such as "render.fps".
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		o.overrides = values
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	c, err := Load(WithEnv(nil))
	if err != nil {
		panic("config: invalid defaults: " + err.Error())
	}
	return c
}

// Load layers defaults, the config file, the environment and overrides,
// in rising priority, and validates the result.
func Load(opts ...Option) (*Config, error) {
	o := options{env: loader.NewEnvLoader(loader.EnvPrefix)}
	for _, opt := range opts {
		opt(&o)
	}

	layers := layer.NewManager()
	layers.AddLayer(layer.NewLayerWithData("defaults", layer.SourceBuiltin,
		layer.PriorityBuiltin, layer.Unflatten(settings().Defaults())))

	if o.file != "" {
		data, err := loader.NewTOMLLoader(o.file).Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.file)
		}
		layers.AddLayer(layer.NewLayerWithData(o.file, layer.SourceFile, layer.PriorityFile, data))
	}

	if o.env != nil {
		data, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		if data != nil {
			layers.AddLayer(layer.NewLayerWithData(layer.SourceEnv.String(), layer.SourceEnv, layer.PriorityEnv, data))
		}
	}

	if len(o.overrides) > 0 {
		layers.AddLayer(layer.NewLayerWithData(layer.SourceArgs.String(), layer.SourceArgs,
			layer.PriorityArgs, layer.Unflatten(o.overrides)))
	}

	c, err := read(registry.NewAccessor(settings(), layers))
	if err != nil {
		return nil, err
	}
	c.Sources = layers.Names()
	c.layers = layers

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Origin returns the name of the layer that supplied the setting at
// path, or "" for unknown paths.
func (c *Config) Origin(path string) string {
	if c.layers == nil {
		return ""
	}
	return c.layers.WhichLayer(path)
}

// Overridden maps each setting not taken from the defaults to the layer
// that set it.
func (c *Config) Overridden() map[string]string {
	result := make(map[string]string)
	for _, s := range settings().All() {
		if origin := c.Origin(s.Path); origin != "" && origin != "defaults" {
			result[s.Path] = origin
		}
	}
	return result
}

// read pulls every setting out of the accessor into a Config.
func read(acc *registry.Accessor) (*Config, error) {
	r := &reader{acc: acc}
	c := &Config{
		Grid: GridConfig{
			Columns: r.getInt("grid.columns"),
			Rows:    r.getInt("grid.rows"),
		},
		Render: RenderConfig{
			FPS: r.getInt("render.fps"),
		},
		Colors: ColorsConfig{
			Foreground: r.getString("colors.foreground"),
			Background: r.getString("colors.background"),
			Attributes: r.getString("colors.attributes"),
		},
		Font: FontConfig{
			Atlas:       r.getString("font.atlas"),
			Charset:     r.getString("font.charset"),
			CellWidth:   r.getInt("font.cellWidth"),
			CellHeight:  r.getInt("font.cellHeight"),
			LineSpacing: r.getInt("font.lineSpacing"),
			Margin:      r.getInt("font.margin"),
		},
		Logging: LoggingConfig{
			Level: r.getString("logging.level"),
			File:  r.getString("logging.file"),
		},
		Scene: SceneConfig{
			Path:  r.getString("scene.path"),
			Watch: r.getBool("scene.watch"),
			Input: r.getString("scene.input"),
		},
		Script: ScriptConfig{
			Path:    r.getString("script.path"),
			Timeout: r.getDuration("script.timeout"),
		},
	}
	return c, errors.Join(r.errs...)
}

// values returns the typed settings keyed by path.
func (c *Config) values() map[string]any {
	return map[string]any{
		"grid.columns":      c.Grid.Columns,
		"grid.rows":         c.Grid.Rows,
		"render.fps":        c.Render.FPS,
		"colors.foreground": c.Colors.Foreground,
		"colors.background": c.Colors.Background,
		"colors.attributes": c.Colors.Attributes,
		"font.atlas":        c.Font.Atlas,
		"font.charset":      c.Font.Charset,
		"font.cellWidth":    c.Font.CellWidth,
		"font.cellHeight":   c.Font.CellHeight,
		"font.lineSpacing":  c.Font.LineSpacing,
		"font.margin":       c.Font.Margin,
		"logging.level":     c.Logging.Level,
		"logging.file":      c.Logging.File,
		"scene.path":        c.Scene.Path,
		"scene.watch":       c.Scene.Watch,
		"scene.input":       c.Scene.Input,
		"script.path":       c.Script.Path,
		"script.timeout":    c.Script.Timeout,
	}
}

// Validate checks every setting against its registered rules and
// reports all problems at once.
func (c *Config) Validate() error {
	reg := settings()
	values := c.values()

	var errs []error
	for _, s := range reg.All() {
		if err := reg.Validate(s.Path, values[s.Path]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// reader collects the accessor's type errors across all settings.
type reader struct {
	acc  *registry.Accessor
	errs []error
}

func (r *reader) check(err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

func (r *reader) getString(path string) string {
	v, err := r.acc.GetString(path)
	r.check(err)
	return v
}

func (r *reader) getInt(path string) int {
	v, err := r.acc.GetInt(path)
	r.check(err)
	return v
}

func (r *reader) getBool(path string) bool {
	v, err := r.acc.GetBool(path)
	r.check(err)
	return v
}

func (r *reader) getDuration(path string) time.Duration {
	v, err := r.acc.GetDuration(path)
	r.check(err)
	return v
}
