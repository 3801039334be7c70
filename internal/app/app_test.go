package app

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cellpanel/internal/config"
	"github.com/dshills/cellpanel/internal/font"
	"github.com/dshills/cellpanel/internal/renderer/backend"
	"github.com/dshills/cellpanel/internal/renderer/core"
	"github.com/dshills/cellpanel/internal/widget"
)

const hudScene = `
input = "prompt"

[root]
kind = "panel"
name = "frame"
width = 20
height = 4
border = true

[[root.children]]
kind = "label"
name = "prompt"
x = 1
y = 1
text = "> "
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Columns = 34
	cfg.Grid.Rows = 11
	cfg.Render.FPS = 200
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	app, err := New(Options{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, app *Application, nb *backend.NullBackend) error {
	t.Helper()
	require.NoError(t, app.SetBackend(nb))

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		app.Shutdown()
		t.Fatal("Run did not return")
		return nil
	}
}

func TestNewUsesDefaultScene(t *testing.T) {
	app := newApp(t, testConfig(t))

	require.NotNil(t, app.Scene())
	require.NotNil(t, app.Scene().Input)
	assert.Equal(t, "Hello!", app.Scene().Input.Text())

	_, ok := app.Progress("progress")
	assert.True(t, ok)
	assert.NotEmpty(t, app.Session())
}

func TestNewSceneFromFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Path = writeFile(t, t.TempDir(), "hud.toml", hudScene)

	app := newApp(t, cfg)
	l, ok := app.Label("prompt")
	require.True(t, ok)
	assert.Same(t, l, app.Scene().Input)
}

func TestNewBadInputOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Input = "nope"

	_, err := New(Options{Config: cfg})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "scene", initErr.Component)
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		component string
	}{
		{"missing scene", func(c *config.Config) { c.Scene.Path = filepath.Join(dir, "none.toml") }, "scene"},
		{"missing script", func(c *config.Config) { c.Script.Path = filepath.Join(dir, "none.lua") }, "script"},
		{"bad log dir", func(c *config.Config) { c.Logging.File = filepath.Join(dir, "no", "such", "log") }, "logger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			_, err := New(Options{Config: cfg})
			var initErr *InitError
			require.ErrorAs(t, err, &initErr)
			assert.Equal(t, tt.component, initErr.Component)
		})
	}
}

func TestNewLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cellpanel.toml", "[grid]\ncolumns = 40\nrows = 12\n")

	app, err := New(Options{
		ConfigPath: path,
		Overrides:  map[string]any{"grid.rows": 13},
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, 40, app.Config().Grid.Columns)
	assert.Equal(t, 13, app.Config().Grid.Rows)
}

func TestLogFileCarriesSession(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.File = filepath.Join(t.TempDir(), "cellpanel.log")

	app, err := New(Options{Config: cfg})
	require.NoError(t, err)
	require.NoError(t, app.Close())

	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session="+app.Session())
	assert.Contains(t, string(data), "[INFO] cellpanel: starting")
}

func TestRenderText(t *testing.T) {
	app := newApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, app.RenderText(&buf))

	want := widget.RenderGrid(app.Scene().Root, 34, 11)
	for i := range want {
		want[i] = strings.TrimRight(want[i], " ")
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", buf.String())
	assert.True(t, strings.HasPrefix(buf.String(), "+-------------------------------+\n"))
	assert.Equal(t, uint64(1), app.Metrics().Snapshot().FrameCount)
}

func TestRenderPNG(t *testing.T) {
	app := newApp(t, testConfig(t))

	var buf bytes.Buffer
	require.NoError(t, app.RenderPNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// Built-in face cells are 7x13, plus 2px line spacing and 4px margins
	assert.Equal(t, 34*7+8, img.Bounds().Dx())
	assert.Equal(t, 11*15+8, img.Bounds().Dy())
}

func TestRunWithoutBackend(t *testing.T) {
	app := newApp(t, testConfig(t))
	assert.ErrorIs(t, app.Run(), ErrNoBackend)
}

func TestRunTypingAndQuit(t *testing.T) {
	app := newApp(t, testConfig(t))
	nb := backend.NewNullBackend(34, 11)

	nb.PostEvent(backend.RuneEvent('a'))
	nb.PostEvent(backend.RuneEvent('b'))
	nb.PostEvent(backend.KeyEvent(backend.KeyBackspace))
	nb.PostEvent(backend.RuneEvent('c'))
	nb.PostEvent(backend.KeyEvent(backend.KeyEscape))

	err := runApp(t, app, nb)
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, "Hello!ac", app.Scene().Input.Text())
	assert.False(t, app.IsRunning())

	snap := app.Metrics().Snapshot()
	assert.Equal(t, uint64(5), snap.InputCount)
	assert.GreaterOrEqual(t, snap.FrameCount, uint64(1))
}

func TestRunScriptQuit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Script.Path = writeFile(t, t.TempDir(), "quit.lua", `
function on_tick(frame)
  ui.set_progress("progress", frame)
  if frame >= 3 then
    ui.quit()
  end
end
`)
	app := newApp(t, cfg)

	err := runApp(t, app, backend.NewNullBackend(34, 11))
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, uint64(3), app.ticks)

	p, _ := app.Progress("progress")
	assert.Equal(t, 3, p.Value())
}

func TestRunScriptHooks(t *testing.T) {
	cfg := testConfig(t)
	cfg.Script.Path = writeFile(t, t.TempDir(), "keys.lua", `
keys = {}
function on_text(text)
  ui.set_label("greeting", "got " .. text)
end
function on_key(name)
  table.insert(keys, name)
  if name == "f1" then
    ui.set_label("greeting", ui.label("greeting") .. " | " .. table.concat(keys, ","))
    ui.quit()
  end
end
`)
	app := newApp(t, cfg)
	nb := backend.NewNullBackend(34, 11)
	nb.PostEvent(backend.RuneEvent('x'))
	nb.PostEvent(backend.KeyEvent(backend.KeyTab))
	nb.PostEvent(backend.KeyEvent(backend.KeyF1))

	err := runApp(t, app, nb)
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, "got x | x,tab,f1", app.Scene().Input.Text())
}

func TestRunScriptErrorsAreNotFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Script.Path = writeFile(t, t.TempDir(), "bad.lua", `
function on_tick(frame)
  if frame >= 3 then
    ui.quit()
  end
  ui.label("missing")
end
`)
	app := newApp(t, cfg)

	err := runApp(t, app, backend.NewNullBackend(34, 11))
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, uint64(3), app.Metrics().Snapshot().ScriptErrors)
}

func TestRunShutdown(t *testing.T) {
	app := newApp(t, testConfig(t))
	nb := backend.NewNullBackend(34, 11)
	require.NoError(t, app.SetBackend(nb))

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	require.Eventually(t, func() bool {
		lines := nb.Lines()
		return len(lines) > 0 && lines[0] == "+-------------------------------+ "
	}, 5*time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, app.SetBackend(nb), ErrAlreadyRunning)

	app.Shutdown()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestResizeEvent(t *testing.T) {
	app := newApp(t, testConfig(t))
	nb := backend.NewNullBackend(34, 11)
	nb.PostEvent(backend.Event{Type: backend.EventResize, Width: 10, Height: 3})
	nb.PostEvent(backend.KeyEvent(backend.KeyCtrlQ))

	assert.ErrorIs(t, runApp(t, app, nb), ErrQuit)

	cols, rows := app.Renderer().Size()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 3, rows)
}

func TestReloadScene(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Scene.Path = writeFile(t, dir, "hud.toml", hudScene)
	app := newApp(t, cfg)
	before := app.Scene()

	writeFile(t, dir, "hud.toml", strings.Replace(hudScene, `text = "> "`, `text = "$ "`, 1))
	app.reloads.request(true, false)
	app.applyReloads()

	require.NotSame(t, before, app.Scene())
	assert.Equal(t, "$ ", app.Scene().Input.Text())

	writeFile(t, dir, "hud.toml", "[root\nkind=")
	app.reloads.request(true, false)
	app.applyReloads()

	assert.Equal(t, "$ ", app.Scene().Input.Text())
	snap := app.Metrics().Snapshot()
	assert.Equal(t, uint64(1), snap.Reloads)
	assert.Equal(t, uint64(1), snap.ReloadFailures)
}

func TestReloadScript(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Script.Path = writeFile(t, dir, "s.lua", `ui.set_label("greeting", "one")`)
	app := newApp(t, cfg)
	assert.Equal(t, "one", app.Scene().Input.Text())

	writeFile(t, dir, "s.lua", `ui.set_label("greeting", "two")`)
	app.reloads.request(false, true)
	app.applyReloads()
	assert.Equal(t, "two", app.Scene().Input.Text())

	writeFile(t, dir, "s.lua", `this is not lua`)
	old := app.script
	app.reloads.request(false, true)
	app.applyReloads()
	assert.Same(t, old, app.script)
}

func TestScriptFollowsReloadedScene(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Scene.Path = writeFile(t, dir, "hud.toml", hudScene)
	cfg.Script.Path = writeFile(t, dir, "s.lua", `function on_key(name) ui.set_label("prompt", name) end`)
	app := newApp(t, cfg)
	before := app.Scene()

	app.reloads.request(true, false)
	app.applyReloads()
	require.NotSame(t, before, app.Scene())

	require.NoError(t, app.script.OnKey("tab"))
	assert.Equal(t, "tab", app.Scene().Input.Text())
	assert.Equal(t, "> ", before.Input.Text())
}

func TestWatcherWatchesSceneAndScript(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Scene.Watch = true
	cfg.Scene.Path = writeFile(t, dir, "hud.toml", hudScene)
	cfg.Script.Path = writeFile(t, dir, "s.lua", "")

	app := newApp(t, cfg)
	require.NotNil(t, app.watcher)
	assert.ElementsMatch(t, []string{cfg.Scene.Path, cfg.Script.Path}, app.watcher.WatchedFiles())
}

func TestReloadQueue(t *testing.T) {
	var q reloadQueue
	q.request(true, false)
	q.request(false, true)

	scene, script := q.take()
	assert.True(t, scene)
	assert.True(t, script)

	scene, script = q.take()
	assert.False(t, scene)
	assert.False(t, script)
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "x", keyName(backend.RuneEvent('x')))
	assert.Equal(t, "enter", keyName(backend.KeyEvent(backend.KeyEnter)))
}

func TestComponentError(t *testing.T) {
	base := errors.New("boom")
	err := NewComponentError("script", "on_tick", base)

	assert.Equal(t, "script: on_tick: boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "script", NewComponentError("script", "", nil).Error())

	var nilErr *ComponentError
	assert.Equal(t, "", nilErr.Error())
	assert.NoError(t, nilErr.Unwrap())
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "backend", Err: os.ErrPermission}
	assert.Equal(t, "init backend: "+os.ErrPermission.Error(), err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestRunAppliesTextAttributes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Colors.Attributes = "bold, underline"
	app := newApp(t, cfg)
	nb := backend.NewNullBackend(34, 11)
	require.NoError(t, app.SetBackend(nb))

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	require.Eventually(t, func() bool {
		return nb.GetCell(0, 0).Rune == '+'
	}, 5*time.Second, 5*time.Millisecond)

	attrs := nb.GetCell(0, 0).Style.Attributes
	assert.True(t, attrs.Has(core.AttrBold))
	assert.True(t, attrs.Has(core.AttrUnderline))
	assert.False(t, attrs.Has(core.AttrReverse))

	app.Shutdown()
	require.NoError(t, <-done)
}

func TestFontSurfaceReverseVideo(t *testing.T) {
	tests := []struct {
		attrs string
		want  color.RGBA
	}{
		{"", font.DefaultBackground},
		{"reverse", font.DefaultForeground},
	}
	for _, tt := range tests {
		cfg := testConfig(t)
		cfg.Colors.Attributes = tt.attrs
		app := newApp(t, cfg)

		surf, err := app.fontSurface()
		require.NoError(t, err)
		require.NoError(t, surf.DrawCharacter(' ', 0, 0))

		origin := surf.CellOrigin(0, 0)
		assert.Equal(t, tt.want, surf.Image().RGBAAt(origin.X+1, origin.Y+1), "attributes %q", tt.attrs)
	}
}

func TestNewLogsOverriddenSettings(t *testing.T) {
	t.Setenv("CELLPANEL_COLORS_BACKGROUND", "000000")
	var buf bytes.Buffer

	app, err := New(Options{
		Overrides: map[string]any{"logging.level": "debug", "grid.rows": 11},
		LogOutput: &buf,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, "000000", app.Config().Colors.Background)
	assert.Contains(t, buf.String(), "settings overridden")
	assert.Contains(t, buf.String(), "colors.background=environment")
	assert.Contains(t, buf.String(), "grid.rows=flags")
}
