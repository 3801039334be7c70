// Package renderer drives a widget tree onto a character surface.
//
// A frame clears the surface, asks the root widget for every cell of the
// grid in row-major order and hands each character the tree produced to
// the surface. Cells the tree leaves empty keep the surface background.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (frame driver)       │
//	├─────────────────────────────────────────┤
//	│  widget.Renderable (root of the tree)   │
//	├─────────────────────────────────────────┤
//	│  Surface                                │
//	├────────────────────┬────────────────────┤
//	│  CellSurface       │  font.Surface      │
//	│  (backend.Backend) │  (bitmap glyphs)   │
//	└────────────────────┴────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	surface := renderer.NewCellSurface(term, core.DefaultStyle())
//	r := renderer.New(surface, renderer.DefaultOptions())
//	r.SetRoot(root)
//	stats := r.RenderNow()
package renderer
