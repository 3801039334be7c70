package app

import (
	"time"

	"github.com/dshills/cellpanel/internal/renderer/backend"
)

// idleTick paces the loop when the frame rate is unlimited.
const idleTick = 4 * time.Millisecond

// pollInput forwards backend events to the loop until stopped.
func (app *Application) pollInput(b backend.Backend) {
	defer app.wg.Done()

	for {
		ev := b.PollEvent()

		select {
		case <-app.stop:
			return
		default:
		}

		if ev.Type == backend.EventNone || ev.Type == backend.EventInterrupt {
			continue
		}

		select {
		case app.events <- ev:
		default:
			app.metrics.RecordInputDropped()
		}
	}
}

// eventLoop is the main application loop.
func (app *Application) eventLoop() error {
	interval := idleTick
	if fps := app.config.Render.FPS; fps > 0 {
		interval = time.Second / time.Duration(fps)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First frame goes out immediately
	if err := app.tick(); err != nil {
		return err
	}

	for {
		select {
		case <-app.stop:
			return nil
		case <-ticker.C:
			if err := app.tick(); err != nil {
				return err
			}
		}
	}
}

// tick runs one frame: input, reloads, on_tick, render.
func (app *Application) tick() error {
	if err := app.drainEvents(); err != nil {
		return err
	}

	app.applyReloads()

	app.ticks++
	if app.script != nil {
		if err := app.script.OnTick(app.ticks); err != nil {
			app.scriptError("on_tick", err)
		}
	}

	if app.quit.Load() {
		return ErrQuit
	}

	app.renderFrame()
	return nil
}

// drainEvents handles every queued event without blocking.
func (app *Application) drainEvents() error {
	for {
		select {
		case ev := <-app.events:
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		app.metrics.RecordInput()
		return app.handleKeyEvent(ev)
	default:
		return nil
	}
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) error {
	if r := app.Renderer(); r != nil {
		r.Resize(ev.Width, ev.Height)
		app.redraw = true
	}
	app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
	return nil
}

// handleKeyEvent processes keyboard input events.
//
// Escape, Ctrl-C and Ctrl-Q quit. Printable runes extend the input label
// and reach on_text, Backspace trims it. Ctrl-L forces a redraw and
// Ctrl-R reloads the scene and script. Every other key reaches on_key.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC, backend.KeyCtrlQ:
		app.logger.Debug("quit key %s", ev.Key)
		return ErrQuit

	case backend.KeyCtrlL:
		app.redraw = true

	case backend.KeyCtrlR:
		app.reloads.request(true, app.script != nil)

	case backend.KeyRune:
		text := string(ev.Rune)
		if in := app.scene.Input; in != nil {
			in.Append(text)
		}
		if app.script != nil {
			if err := app.script.OnText(text); err != nil {
				app.scriptError("on_text", err)
			}
		}

	case backend.KeyBackspace:
		if in := app.scene.Input; in != nil {
			in.Backspace()
		}
	}

	if app.script != nil {
		if err := app.script.OnKey(keyName(ev)); err != nil {
			app.scriptError("on_key", err)
		}
	}
	return nil
}

// keyName is the name scripts receive: the character for rune keys.
func keyName(ev backend.Event) string {
	if ev.Key == backend.KeyRune {
		return string(ev.Rune)
	}
	return ev.Key.String()
}

func (app *Application) renderFrame() {
	r := app.Renderer()
	if r == nil {
		return
	}

	if app.redraw {
		app.redraw = false
		app.recordFrame(r.RenderNow())
		return
	}
	if stats, ok := r.Render(); ok {
		app.recordFrame(stats)
	}
}

func (app *Application) scriptError(hook string, err error) {
	app.metrics.RecordScriptError()
	app.componentError("script", hook, err)
}
