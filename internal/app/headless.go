package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/cellpanel/internal/font"
	"github.com/dshills/cellpanel/internal/renderer"
	"github.com/dshills/cellpanel/internal/renderer/backend"
	"github.com/dshills/cellpanel/internal/renderer/core"
)

// RenderText renders one frame of the grid configured in grid.columns and
// grid.rows through an in-memory backend and writes it as text.
// Trailing blanks of each row are trimmed.
func (app *Application) RenderText(w io.Writer) error {
	cols, rows := app.config.Grid.Columns, app.config.Grid.Rows

	nb := backend.NewNullBackend(cols, rows)
	if err := nb.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer nb.Shutdown()

	style, err := app.config.Colors.Style()
	if err != nil {
		return err
	}

	r := renderer.New(renderer.NewCellSurface(nb, style), renderer.Options{})
	r.SetRoot(app.scene.Root)
	app.recordFrame(r.RenderNow())

	for _, line := range nb.Lines() {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// RenderPNG renders one frame with the configured font and writes it as
// a PNG image.
func (app *Application) RenderPNG(w io.Writer) error {
	surf, err := app.fontSurface()
	if err != nil {
		return NewComponentError("font", "create surface", err)
	}

	r := renderer.New(surf, renderer.Options{})
	r.SetRoot(app.scene.Root)

	stats := r.RenderNow()
	app.recordFrame(stats)
	if stats.Failed > 0 {
		app.logger.WithComponent("font").Warn("%d cells had no glyph: %v", stats.Failed, stats.Err)
	}

	return surf.WritePNG(w)
}

// fontSurface builds the bitmap surface from the font settings. Without
// an atlas file the built-in face is used at its own cell size.
func (app *Application) fontSurface() (*font.Surface, error) {
	fc := app.config.Font

	var (
		atlas   *font.Atlas
		metrics font.Metrics
	)
	if fc.Atlas == "" {
		atlas = font.BasicAtlas()
		metrics = font.MetricsFor(atlas)
	} else {
		charset := fc.Charset
		if charset == "" {
			charset = font.DefaultCharset
		}
		a, err := font.LoadAtlas(fc.Atlas, charset, fc.CellWidth, fc.CellHeight)
		if err != nil {
			return nil, err
		}
		atlas = a
		metrics = font.Metrics{CellWidth: fc.CellWidth, CellHeight: fc.CellHeight}
	}
	metrics.LineSpacing = fc.LineSpacing
	metrics.Margin = fc.Margin

	surf, err := font.NewSurface(atlas, app.config.Grid.Columns, app.config.Grid.Rows, metrics)
	if err != nil {
		return nil, err
	}

	fg, err := app.config.Colors.ForegroundColor()
	if err != nil {
		return nil, err
	}
	bg, err := app.config.Colors.BackgroundColor()
	if err != nil {
		return nil, err
	}
	fgRGBA, bgRGBA := fg.RGBA(font.DefaultForeground), bg.RGBA(font.DefaultBackground)

	// Reverse video is the only text attribute a glyph atlas can show.
	attrs, err := core.ParseAttributes(app.config.Colors.Attributes)
	if err != nil {
		return nil, err
	}
	if attrs.Has(core.AttrReverse) {
		fgRGBA, bgRGBA = bgRGBA, fgRGBA
	}
	surf.SetForeground(fgRGBA)
	surf.SetBackground(bgRGBA)

	return surf, nil
}
