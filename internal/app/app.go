// Package app provides the main application structure and coordination
// for cellpanel. It wires configuration, the scene, the script and the
// renderer together and runs the frame loop.
package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/cellpanel/internal/config"
	"github.com/dshills/cellpanel/internal/config/watcher"
	"github.com/dshills/cellpanel/internal/renderer"
	"github.com/dshills/cellpanel/internal/renderer/backend"
	"github.com/dshills/cellpanel/internal/scene"
	"github.com/dshills/cellpanel/internal/script"
	"github.com/dshills/cellpanel/internal/widget"
)

// eventQueueSize bounds input buffered between frames.
const eventQueueSize = 256

// Application is the central coordinator for all cellpanel components.
//
// The widget tree, the script and the renderer belong to the loop
// goroutine once Run starts. Other goroutines only post events, reload
// requests and shutdown.
type Application struct {
	mu sync.RWMutex

	config  *config.Config
	logger  *Logger
	logFile *os.File
	metrics *Metrics
	session string

	scene    *scene.Scene
	script   *script.Runtime
	watcher  *watcher.Watcher
	renderer *renderer.Renderer
	backend  backend.Backend

	events  chan backend.Event
	reloads *reloadQueue
	ticks   uint64
	redraw  bool

	running  atomic.Bool
	quit     atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Options configures the application.
type Options struct {
	// Config is used as is when set. Otherwise the configuration is
	// loaded from ConfigPath, the environment and Overrides.
	Config *config.Config

	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Overrides are dotted settings taking precedence over every other
	// source, typically from command-line flags.
	Overrides map[string]any

	// LogOutput receives logs when no log file is configured.
	// Nil discards them.
	LogOutput io.Writer
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		metrics: NewMetrics(),
		session: NewSessionID(),
		events:  make(chan backend.Event, eventQueueSize),
		reloads: &reloadQueue{},
		stop:    make(chan struct{}),
	}

	if err := app.bootstrap(opts); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	// 1. Config
	cfg := opts.Config
	if cfg == nil {
		var configOpts []config.Option
		if opts.ConfigPath != "" {
			configOpts = append(configOpts, config.WithFile(opts.ConfigPath))
		}
		if len(opts.Overrides) > 0 {
			configOpts = append(configOpts, config.WithOverrides(opts.Overrides))
		}
		loaded, err := config.Load(configOpts...)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	app.config = cfg

	// 2. Logger
	if err := app.initLogger(opts.LogOutput); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	app.logger.Info("starting (sources: %v)", cfg.Sources)
	if overridden := cfg.Overridden(); len(overridden) > 0 {
		fields := make(map[string]any, len(overridden))
		for path, origin := range overridden {
			fields[path] = origin
		}
		app.logger.WithComponent("config").WithFields(fields).Debug("settings overridden")
	}

	// 3. Scene
	s, err := app.loadScene()
	if err != nil {
		return &InitError{Component: "scene", Err: err}
	}
	app.scene = s
	app.logger.WithComponent("scene").Debug("built %d named widgets", s.Registry.Len())

	// 4. Script
	if cfg.Script.Path != "" {
		rt, err := app.loadScript()
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
		app.script = rt
	}

	// 5. Watcher
	if cfg.Scene.Watch {
		if err := app.initWatcher(); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}

	return nil
}

func (app *Application) initLogger(fallback io.Writer) error {
	out := fallback
	if out == nil {
		out = io.Discard
	}
	if path := app.config.Logging.File; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.config.Logging.Level),
		Output: out,
		Prefix: "cellpanel",
	}).WithField("session", app.session)
	return nil
}

// loadScene builds the configured scene file, or the demo scene.
func (app *Application) loadScene() (*scene.Scene, error) {
	f := scene.DefaultFile()
	if path := app.config.Scene.Path; path != "" {
		loaded, err := scene.Load(path)
		if err != nil {
			return nil, err
		}
		f = loaded
	}
	if app.config.Scene.Input != "" {
		f.Input = app.config.Scene.Input
	}
	return scene.Build(f)
}

func (app *Application) loadScript() (*script.Runtime, error) {
	log := app.logger.WithComponent("lua")
	return script.Load(app.config.Script.Path, app,
		script.WithTimeout(app.config.Script.Timeout),
		script.WithPrint(func(msg string) {
			log.Info("%s", msg)
		}),
	)
}

// SetBackend sets the display backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until a quit key, a script quit or Shutdown. Quitting from
// inside the loop returns ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	style, err := app.config.Colors.Style()
	if err != nil {
		b.Shutdown()
		return &InitError{Component: "renderer", Err: err}
	}
	r := renderer.New(renderer.NewCellSurface(b, style), renderer.Options{MaxFPS: app.config.Render.FPS})
	r.SetRoot(app.scene.Root)

	app.mu.Lock()
	app.renderer = r
	app.mu.Unlock()

	if app.watcher != nil {
		if err := app.watcher.Start(); err != nil {
			app.logger.WithComponent("watcher").Warn("start: %v", err)
		}
	}

	app.wg.Add(1)
	go app.pollInput(b)

	cols, rows := r.Size()
	app.logger.Info("running on %dx%d grid", cols, rows)

	err = app.eventLoop()

	app.stopOnce.Do(func() { close(app.stop) })
	b.Shutdown()
	app.wg.Wait()

	snap := app.metrics.Snapshot()
	app.logger.Info("stopped after %d frames (avg %v, %d inputs dropped)",
		snap.FrameCount, snap.AvgRenderTime(), snap.InputDropped)

	return err
}

// Shutdown asks a running loop to stop. Run then returns nil.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() { close(app.stop) })
}

// Close releases the script, the watcher and the log file.
// Call it after Run has returned.
func (app *Application) Close() error {
	var firstErr error
	if app.watcher != nil {
		app.watcher.Stop()
		app.watcher = nil
	}
	if app.script != nil {
		if err := app.script.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		app.script = nil
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		app.logFile = nil
	}
	return firstErr
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return NullLogger
	}
	return app.logger
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Session returns the id attached to every log line of this run.
func (app *Application) Session() string {
	return app.session
}

// Scene returns the current scene.
func (app *Application) Scene() *scene.Scene {
	return app.scene
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Label looks up a named label of the current scene.
func (app *Application) Label(name string) (*widget.Label, bool) {
	return app.scene.Registry.Label(name)
}

// Progress looks up a named progress bar of the current scene.
func (app *Application) Progress(name string) (*widget.Progress, bool) {
	return app.scene.Registry.Progress(name)
}

// RequestQuit makes the loop return ErrQuit after the current tick.
func (app *Application) RequestQuit() {
	app.quit.Store(true)
}

var _ script.Host = (*Application)(nil)

func (app *Application) componentError(component, action string, err error) {
	if err == nil {
		return
	}
	app.logger.WithComponent(component).Error("%v", NewComponentError(component, action, err))
}
