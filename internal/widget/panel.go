package widget

// Characters used by bordered panels.
const (
	BorderCorner     = '+'
	BorderVertical   = '|'
	BorderHorizontal = '-'

	// Fill is what an opaque panel shows where nothing else draws.
	Fill = ' '
)

// ownership tracks whether a built-in widget already has a parent.
type ownership struct {
	owned bool
}

func (o *ownership) isOwned() bool { return o.owned }
func (o *ownership) markOwned()    { o.owned = true }

// ownable is implemented by widgets that refuse a second parent.
type ownable interface {
	isOwned() bool
	markOwned()
}

// Panel is a rectangular container, optionally bordered, that owns an
// ordered list of children.
type Panel struct {
	ownership

	rect        Rect
	border      bool
	transparent bool
	children    []Renderable
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithTransparent makes the panel report no character for in-bounds cells
// that neither the border nor a child claims, so whatever is behind it shows.
func WithTransparent() PanelOption {
	return func(p *Panel) {
		p.transparent = true
	}
}

// NewPanel creates a panel covering rect in its parent's coordinate space.
// A negative width or height fails with ErrInvalidGeometry.
func NewPanel(rect Rect, border bool, opts ...PanelOption) (*Panel, error) {
	if rect.Width < 0 {
		return nil, newConstructionError("panel", "width", rect.Width, ErrInvalidGeometry)
	}
	if rect.Height < 0 {
		return nil, newConstructionError("panel", "height", rect.Height, ErrInvalidGeometry)
	}

	p := &Panel{
		rect:   rect,
		border: border,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Rect returns the panel's rectangle in its parent's coordinates.
func (p *Panel) Rect() Rect {
	return p.rect
}

// Bordered reports whether the panel draws a border.
func (p *Panel) Bordered() bool {
	return p.border
}

// Transparent reports whether unclaimed cells fall through.
func (p *Panel) Transparent() bool {
	return p.transparent
}

// Children returns a copy of the children in insertion order.
func (p *Panel) Children() []Renderable {
	out := make([]Renderable, len(p.children))
	copy(out, p.children)
	return out
}

// AddChild appends child. Children added earlier take priority over
// children added later wherever both draw.
//
// The panel takes exclusive ownership: a built-in widget that already has a
// parent is rejected, as is any child whose subtree contains p.
func (p *Panel) AddChild(child Renderable) error {
	if child == nil {
		return ErrNilChild
	}
	if cp, ok := child.(*Panel); ok && cp.contains(p) {
		return ErrCycle
	}
	if o, ok := child.(ownable); ok {
		if o.isOwned() {
			return ErrAlreadyOwned
		}
		o.markOwned()
	}
	p.children = append(p.children, child)
	return nil
}

// contains reports whether target is p or one of its descendants.
func (p *Panel) contains(target *Panel) bool {
	if p == target {
		return true
	}
	for _, child := range p.children {
		if cp, ok := child.(*Panel); ok && cp.contains(target) {
			return true
		}
	}
	return false
}

// Render resolves the cell at (x, y) in the parent's coordinates.
func (p *Panel) Render(x, y int) (rune, bool) {
	if !p.rect.Contains(x, y) {
		return 0, false
	}

	if p.border {
		vertical := p.rect.onVerticalEdge(x)
		horizontal := p.rect.onHorizontalEdge(y)
		switch {
		case vertical && horizontal:
			return BorderCorner, true
		case vertical:
			return BorderVertical, true
		case horizontal:
			return BorderHorizontal, true
		}
	}

	lx, ly := x-p.rect.X, y-p.rect.Y
	for _, child := range p.children {
		if ch, ok := child.Render(lx, ly); ok {
			return ch, true
		}
	}

	if p.transparent {
		return 0, false
	}
	return Fill, true
}
