package app

import (
	"path/filepath"
	"sync"

	"github.com/dshills/cellpanel/internal/config/watcher"
	"github.com/dshills/cellpanel/internal/renderer"
)

// reloadQueue collects reload requests from the watcher goroutine until
// the loop applies them between frames.
type reloadQueue struct {
	mu     sync.Mutex
	scene  bool
	script bool
}

func (q *reloadQueue) request(scene, script bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene = q.scene || scene
	q.script = q.script || script
}

func (q *reloadQueue) take() (scene, script bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	scene, script = q.scene, q.script
	q.scene, q.script = false, false
	return scene, script
}

// initWatcher watches the scene and script files.
func (app *Application) initWatcher() error {
	log := app.logger.WithComponent("watcher")

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		return err
	}

	scenePath := absPath(app.config.Scene.Path)
	scriptPath := absPath(app.config.Script.Path)

	for _, p := range []string{scenePath, scriptPath} {
		if p == "" {
			continue
		}
		if err := w.Watch(p); err != nil {
			w.Stop()
			return err
		}
	}

	w.OnChange(func(ev watcher.Event) {
		log.Debug("%s %s", ev.Op, ev.Path)
		app.reloads.request(ev.Path == scenePath, ev.Path == scriptPath)
	})

	app.watcher = w
	log.Info("watching %v", w.WatchedFiles())
	return nil
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// applyReloads rebuilds what changed. A failed reload is logged and the
// previous scene or script stays in place.
func (app *Application) applyReloads() {
	reloadScene, reloadScript := app.reloads.take()

	if reloadScene {
		app.reloadScene()
	}
	if reloadScript {
		app.reloadScript()
	}
}

func (app *Application) reloadScene() {
	log := app.logger.WithComponent("scene")

	s, err := app.loadScene()
	if err != nil {
		app.metrics.RecordReload(false)
		log.Warn("reload failed, keeping current scene: %v", err)
		return
	}

	app.scene = s
	if r := app.Renderer(); r != nil {
		r.SetRoot(s.Root)
		app.redraw = true
	}
	app.metrics.RecordReload(true)
	log.Info("reloaded %s", app.config.Scene.Path)
}

func (app *Application) reloadScript() {
	if app.config.Script.Path == "" {
		return
	}
	log := app.logger.WithComponent("script")

	rt, err := app.loadScript()
	if err != nil {
		app.metrics.RecordReload(false)
		log.Warn("reload failed, keeping current script: %v", err)
		return
	}

	if app.script != nil {
		_ = app.script.Close()
	}
	app.script = rt
	app.metrics.RecordReload(true)
	log.Info("reloaded %s", rt.Path())
}

func (app *Application) recordFrame(stats renderer.FrameStats) {
	app.metrics.RecordFrame(stats.Duration)
	app.metrics.RecordDrawFailures(stats.Failed)
	if stats.Err != nil {
		app.logger.WithComponent("renderer").Debug("frame %d: %d cells failed, first: %v",
			stats.Frame, stats.Failed, stats.Err)
	}
}
