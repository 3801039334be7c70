package font

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"
)

// Default cell geometry of the character grid, in pixels.
const (
	DefaultCellWidth   = 8
	DefaultCellHeight  = 14
	DefaultLineSpacing = 2
	DefaultMargin      = 4
)

var (
	DefaultForeground = color.RGBA{R: 255, G: 128, B: 196, A: 255}
	DefaultBackground = color.RGBA{R: 23, G: 54, B: 89, A: 255}
	ClearColor        = color.RGBA{A: 255}
)

// ErrOutOfBounds is returned for cells outside the grid.
var ErrOutOfBounds = errors.New("cell out of bounds")

// Metrics is the pixel geometry of the character grid.
type Metrics struct {
	CellWidth   int
	CellHeight  int
	LineSpacing int // extra pixels between rows
	Margin      int // border around the whole grid
}

// DefaultMetrics returns the standard 8x14 cell geometry.
func DefaultMetrics() Metrics {
	return Metrics{
		CellWidth:   DefaultCellWidth,
		CellHeight:  DefaultCellHeight,
		LineSpacing: DefaultLineSpacing,
		Margin:      DefaultMargin,
	}
}

// MetricsFor returns the default metrics sized to the atlas cells.
func MetricsFor(a *Atlas) Metrics {
	m := DefaultMetrics()
	m.CellWidth, m.CellHeight = a.CellSize()
	return m
}

func (m Metrics) rowHeight() int {
	return m.CellHeight + m.LineSpacing
}

// Surface is a character grid backed by an RGBA image.
type Surface struct {
	mu sync.Mutex

	atlas   *Atlas
	cols    int
	rows    int
	metrics Metrics

	fg  *image.Uniform
	bg  *image.Uniform
	img *image.RGBA

	frames int
}

// NewSurface creates a cols x rows grid drawing glyphs from atlas.
func NewSurface(atlas *Atlas, cols, rows int, m Metrics) (*Surface, error) {
	if atlas == nil {
		return nil, errors.New("nil atlas")
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid grid %dx%d", cols, rows)
	}
	if m.CellWidth <= 0 || m.CellHeight <= 0 || m.LineSpacing < 0 || m.Margin < 0 {
		return nil, fmt.Errorf("invalid metrics %+v", m)
	}

	width := cols*m.CellWidth + 2*m.Margin
	height := rows*m.rowHeight() + 2*m.Margin

	s := &Surface{
		atlas:   atlas,
		cols:    cols,
		rows:    rows,
		metrics: m,
		fg:      image.NewUniform(DefaultForeground),
		bg:      image.NewUniform(DefaultBackground),
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	s.Clear()
	return s, nil
}

func (s *Surface) Size() (int, int) {
	return s.cols, s.rows
}

// Metrics returns the grid geometry.
func (s *Surface) Metrics() Metrics {
	return s.metrics
}

// Clear paints the whole image with ClearColor.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(ClearColor), image.Point{}, draw.Src)
}

// CellOrigin returns the top-left pixel of the glyph in cell (col, row).
func (s *Surface) CellOrigin(col, row int) image.Point {
	m := s.metrics
	return image.Pt(m.Margin+col*m.CellWidth, m.Margin+row*m.rowHeight())
}

// DrawCharacter paints the cell background, then the glyph for c in the
// foreground color. The background extends half the line spacing above
// the glyph.
func (s *Surface) DrawCharacter(c rune, col, row int) error {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return fmt.Errorf("draw %q at (%d, %d): %w", c, col, row, ErrOutOfBounds)
	}
	glyph, ok := s.atlas.Glyph(c)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoGlyph, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.metrics
	origin := s.CellOrigin(col, row)

	top := origin.Y - m.LineSpacing/2
	bgRect := image.Rect(origin.X, top, origin.X+m.CellWidth, top+m.rowHeight())
	draw.Draw(s.img, bgRect, s.bg, image.Point{}, draw.Src)

	cell := image.Rect(origin.X, origin.Y, origin.X+m.CellWidth, origin.Y+m.CellHeight)
	dst := image.Rectangle{Min: origin, Max: origin.Add(glyph.Size())}.Intersect(cell)
	draw.DrawMask(s.img, dst, s.fg, image.Point{}, s.atlas.Mask(), glyph.Min, draw.Over)

	return nil
}

// Show marks the end of a frame.
func (s *Surface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
}

// Frames returns how many frames were shown.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// SetForeground sets the glyph color.
func (s *Surface) SetForeground(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fg = image.NewUniform(c)
}

// SetBackground sets the cell background color.
func (s *Surface) SetBackground(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bg = image.NewUniform(c)
}

// Image returns a copy of the current image.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// WritePNG encodes the current image as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}
