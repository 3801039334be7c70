package config

import (
	"sync"

	"github.com/dshills/cellpanel/internal/config/registry"
	"github.com/dshills/cellpanel/internal/renderer/core"
)

// settings returns the registry of every known setting.
var settings = sync.OnceValue(func() *registry.Registry {
	r := registry.New()

	r.MustRegister(registry.Setting{
		Path:        "grid.columns",
		Type:        registry.TypeInt,
		Default:     80,
		Description: "Grid width in cells for headless output",
		Minimum:     registry.MinValue(1),
	})
	r.MustRegister(registry.Setting{
		Path:        "grid.rows",
		Type:        registry.TypeInt,
		Default:     24,
		Description: "Grid height in cells for headless output",
		Minimum:     registry.MinValue(1),
	})

	r.MustRegister(registry.Setting{
		Path:        "render.fps",
		Type:        registry.TypeInt,
		Default:     60,
		Description: "Frame rate cap; 0 renders as fast as possible",
		Minimum:     registry.MinValue(0),
	})

	r.MustRegister(registry.Setting{
		Path:        "colors.foreground",
		Type:        registry.TypeString,
		Default:     "#ff80c4",
		Description: "Glyph color as #rrggbb, or default",
		Check:       checkColor,
	})
	r.MustRegister(registry.Setting{
		Path:        "colors.background",
		Type:        registry.TypeString,
		Default:     "#173659",
		Description: "Background color as #rrggbb, or default",
		Check:       checkColor,
	})
	r.MustRegister(registry.Setting{
		Path:        "colors.attributes",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Text attributes such as \"bold, underline\"",
		Check:       checkAttributes,
	})

	r.MustRegister(registry.Setting{
		Path:        "font.atlas",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Glyph atlas PNG; empty uses the built-in face",
	})
	r.MustRegister(registry.Setting{
		Path:        "font.charset",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Characters of the atlas in cell order",
	})
	r.MustRegister(registry.Setting{
		Path:        "font.cellWidth",
		Type:        registry.TypeInt,
		Default:     8,
		Description: "Atlas cell width in pixels",
		Minimum:     registry.MinValue(1),
	})
	r.MustRegister(registry.Setting{
		Path:        "font.cellHeight",
		Type:        registry.TypeInt,
		Default:     14,
		Description: "Atlas cell height in pixels",
		Minimum:     registry.MinValue(1),
	})
	r.MustRegister(registry.Setting{
		Path:        "font.lineSpacing",
		Type:        registry.TypeInt,
		Default:     2,
		Description: "Pixels between rows",
		Minimum:     registry.MinValue(0),
	})
	r.MustRegister(registry.Setting{
		Path:        "font.margin",
		Type:        registry.TypeInt,
		Default:     4,
		Description: "Pixels around the grid",
		Minimum:     registry.MinValue(0),
	})

	r.MustRegister(registry.Setting{
		Path:        "logging.level",
		Type:        registry.TypeString,
		Default:     "info",
		Description: "Logging verbosity level",
		Enum:        []any{"debug", "info", "warn", "warning", "error"},
	})
	r.MustRegister(registry.Setting{
		Path:        "logging.file",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Log file path (empty for no file logging)",
	})

	r.MustRegister(registry.Setting{
		Path:        "scene.path",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Scene file (TOML or YAML); empty uses the built-in scene",
	})
	r.MustRegister(registry.Setting{
		Path:        "scene.watch",
		Type:        registry.TypeBool,
		Default:     false,
		Description: "Reload the scene and script when they change on disk",
	})
	r.MustRegister(registry.Setting{
		Path:        "scene.input",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Label that receives typed text, overriding the scene",
	})

	r.MustRegister(registry.Setting{
		Path:        "script.path",
		Type:        registry.TypeString,
		Default:     "",
		Description: "Lua script driving the scene",
	})
	r.MustRegister(registry.Setting{
		Path:        "script.timeout",
		Type:        registry.TypeDuration,
		Default:     "250ms",
		Description: "Time limit per script hook; 0 disables it",
		Minimum:     registry.MinValue(0),
	})

	return r
})

func checkColor(v any) error {
	_, err := core.ColorFromHex(v.(string))
	return err
}

func checkAttributes(v any) error {
	_, err := core.ParseAttributes(v.(string))
	return err
}
