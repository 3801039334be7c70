package renderer

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/cellpanel/internal/widget"
)

// Surface is the character sink a frame is drawn onto.
type Surface interface {
	// Size returns the grid dimensions in cells.
	Size() (cols, rows int)

	// Clear resets every cell to the background.
	Clear()

	// DrawCharacter draws c into the cell at (col, row).
	DrawCharacter(c rune, col, row int) error

	// Show presents the finished frame.
	Show()
}

// Options configures the renderer.
type Options struct {
	// MaxFPS caps how often Render produces a frame. Zero disables the cap.
	MaxFPS int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{MaxFPS: 60}
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame    uint64        // sequence number, starting at 1
	Cells    int           // cells queried
	Drawn    int           // characters accepted by the surface
	Failed   int           // characters the surface rejected
	Err      error         // first surface error, if any
	Duration time.Duration // time spent producing the frame
}

// Renderer is the frame driver. It queries the root widget for every cell
// of the grid and forwards the characters to a Surface.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	surface Surface
	root    widget.Renderable

	cols int
	rows int

	// Frame timing
	lastFrame    time.Time
	minFrameTime time.Duration
	frameCount   uint64
}

// New creates a renderer drawing onto surface.
func New(surface Surface, opts Options) *Renderer {
	cols, rows := surface.Size()
	r := &Renderer{
		surface: surface,
		cols:    cols,
		rows:    rows,
	}
	r.setOptions(opts)
	return r
}

func (r *Renderer) setOptions(opts Options) {
	r.opts = opts
	r.minFrameTime = 0
	if opts.MaxFPS > 0 {
		r.minFrameTime = time.Second / time.Duration(opts.MaxFPS)
	}
}

// SetRoot sets the widget tree to render. A nil root renders an empty frame.
func (r *Renderer) SetRoot(root widget.Renderable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = root
}

// Root returns the current root widget.
func (r *Renderer) Root() widget.Renderable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOptions updates the renderer options.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setOptions(opts)
}

// Resize changes the grid dimensions used by subsequent frames.
func (r *Renderer) Resize(cols, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cols = cols
	r.rows = rows
}

// Size returns the grid dimensions.
func (r *Renderer) Size() (cols, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cols, r.rows
}

// FrameCount returns the number of frames rendered so far.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Render performs a render cycle if the frame-rate limit allows it.
// The boolean reports whether a frame was produced.
func (r *Renderer) Render() (FrameStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < r.minFrameTime {
		return FrameStats{}, false
	}

	return r.render(now), true
}

// RenderNow performs an immediate render, ignoring frame rate limiting.
func (r *Renderer) RenderNow() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.render(time.Now())
}

// render performs the actual rendering (must hold lock).
func (r *Renderer) render(start time.Time) FrameStats {
	r.frameCount++
	r.lastFrame = start

	stats := FrameStats{Frame: r.frameCount}

	r.surface.Clear()
	if r.root != nil {
		for y := 0; y < r.rows; y++ {
			for x := 0; x < r.cols; x++ {
				stats.Cells++
				c, ok := r.root.Render(x, y)
				if !ok {
					continue
				}
				if err := r.surface.DrawCharacter(c, x, y); err != nil {
					stats.Failed++
					if stats.Err == nil {
						stats.Err = err
					}
					continue
				}
				stats.Drawn++
			}
		}
	}
	r.surface.Show()

	stats.Duration = time.Since(start)
	return stats
}

// ErrOutOfBounds is returned when a character is drawn outside the surface.
var ErrOutOfBounds = errors.New("cell out of bounds")
