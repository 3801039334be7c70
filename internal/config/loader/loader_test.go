package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFS adapts fstest.MapFS to FileSystem.
type mapFS struct{ fstest.MapFS }

func (m mapFS) ReadFile(path string) ([]byte, error) { return m.MapFS.ReadFile(path) }
func (m mapFS) Stat(path string) (fs.FileInfo, error) { return m.MapFS.Stat(path) }

func TestTOMLLoaderLoad(t *testing.T) {
	fsys := mapFS{fstest.MapFS{
		"cellpanel.toml": {Data: []byte(`
[render]
fps = 30

[colors]
foreground = "#ffffff"
`)},
	}}

	cfg, err := NewTOMLLoaderWithFS(fsys, "cellpanel.toml").Load()
	require.NoError(t, err)

	render := cfg["render"].(map[string]any)
	assert.Equal(t, int64(30), render["fps"])
	colors := cfg["colors"].(map[string]any)
	assert.Equal(t, "#ffffff", colors["foreground"])
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	cfg, err := NewTOMLLoader(filepath.Join(t.TempDir(), "none.toml")).Load()
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestTOMLLoaderInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render\nfps = 1"), 0o644))

	_, err := NewTOMLLoader(path).Load()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
	assert.Positive(t, pe.Line)
	assert.Contains(t, pe.Error(), "parse error in "+path)
}

func TestTOMLLoaderFromReader(t *testing.T) {
	cfg, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`[grid]
columns = 40`))
	require.NoError(t, err)
	assert.Equal(t, int64(40), cfg["grid"].(map[string]any)["columns"])
}

func TestMapLoader(t *testing.T) {
	src := MapLoader{"render": map[string]any{"fps": 5}}
	cfg, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg["render"].(map[string]any)["fps"])

	cfg["render"].(map[string]any)["fps"] = 6
	assert.Equal(t, 5, src["render"].(map[string]any)["fps"], "Load returns a copy")

	cfg, err = MapLoader(nil).Load()
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestEnvLoaderLoad(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	l.environ = func() []string {
		return []string{
			"CELLPANEL_LOG_LEVEL=debug",
			"CELLPANEL_FPS=1",
			"CELLPANEL_SCENE_WATCH=yes",
			"CELLPANEL_FONT_CELL_WIDTH=9",
			"CELLPANEL_SCRIPT_TIMEOUT=50ms",
			"CELLPANEL_COLORS_BACKGROUND=000000",
			"CELLPANEL_NOSETTING=1",
			"HOME=/root",
		}
	}

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"logging": map[string]any{"level": "debug"},
		"render":  map[string]any{"fps": "1"},
		"scene":   map[string]any{"watch": "yes"},
		"font":    map[string]any{"cellWidth": "9"},
		"script":  map[string]any{"timeout": "50ms"},
		"colors":  map[string]any{"background": "000000"},
	}, cfg)
}

func TestEnvLoaderEmpty(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	l.environ = func() []string { return []string{"PATH=/bin"} }

	cfg, err := l.Load()
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestEnvLoaderMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping("APP_", nil)
	l.AddMapping("APP_W", "grid.columns")
	l.environ = func() []string { return []string{"APP_W=12"} }

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "12", cfg["grid"].(map[string]any)["columns"])
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	tests := map[string]string{
		"CELLPANEL_RENDER_FPS":        "render.fps",
		"CELLPANEL_FONT_LINE_SPACING": "font.lineSpacing",
		"CELLPANEL_COLORS_FOREGROUND": "colors.foreground",
		"CELLPANEL_ALONE":             "",
	}
	for env, want := range tests {
		assert.Equal(t, want, l.envToPath(env), env)
	}
}
