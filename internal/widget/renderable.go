package widget

// Renderable is implemented by anything that can occupy cells.
//
// Render reports the character drawn at (x, y) in the receiver's local
// coordinate space. The boolean is false when the widget has no opinion about
// that cell, including any out-of-range coordinate. Render must be free of
// side effects.
type Renderable interface {
	Render(x, y int) (rune, bool)
}

// RenderFunc adapts an ordinary function to the Renderable interface.
type RenderFunc func(x, y int) (rune, bool)

// Render calls f(x, y).
func (f RenderFunc) Render(x, y int) (rune, bool) {
	return f(x, y)
}

// Point is a cell position.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle of cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rectangle from its origin and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the column of the far vertical edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the row of the far horizontal edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether (x, y) lies inside the rectangle.
// Both far edges are inclusive: a rectangle of width w covers w+1 columns.
// The border is drawn on the far edge, so it has to be addressable.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// onVerticalEdge reports whether x is the left or right boundary.
func (r Rect) onVerticalEdge(x int) bool {
	return x == r.X || x == r.Right()
}

// onHorizontalEdge reports whether y is the top or bottom boundary.
func (r Rect) onHorizontalEdge(y int) bool {
	return y == r.Y || y == r.Bottom()
}
