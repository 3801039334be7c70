package renderer

import (
	"fmt"
	"sync"

	"github.com/dshills/cellpanel/internal/renderer/backend"
	"github.com/dshills/cellpanel/internal/renderer/core"
)

// CellSurface draws characters into the cells of a backend.
type CellSurface struct {
	mu      sync.RWMutex
	backend backend.Backend
	style   core.Style
}

// NewCellSurface wraps b. Characters and background use style.
func NewCellSurface(b backend.Backend, style core.Style) *CellSurface {
	return &CellSurface{backend: b, style: style}
}

// Style returns the drawing style.
func (s *CellSurface) Style() core.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// SetStyle changes the drawing style for subsequent frames.
func (s *CellSurface) SetStyle(style core.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

func (s *CellSurface) Size() (int, int) {
	return s.backend.Size()
}

// Clear paints every cell with a blank in the background color.
func (s *CellSurface) Clear() {
	w, h := s.backend.Size()
	s.backend.Fill(core.RectFromSize(0, 0, h, w), core.NewStyledCell(' ', s.Style()))
}

func (s *CellSurface) DrawCharacter(c rune, col, row int) error {
	w, h := s.backend.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return fmt.Errorf("draw %q at (%d, %d): %w", c, col, row, ErrOutOfBounds)
	}
	s.backend.SetCell(col, row, core.NewStyledCell(c, s.Style()))
	return nil
}

func (s *CellSurface) Show() {
	s.backend.Show()
}
