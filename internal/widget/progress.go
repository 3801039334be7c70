package widget

import "math/big"

// Progress bar characters.
const (
	ProgressOpen   = '['
	ProgressClose  = ']'
	ProgressFilled = '='
	ProgressEmpty  = ' '
)

// Progress is a one-row bar such as "[====    ]".
//
// The value is not clamped. A value past max renders a full bar and a
// value before min an empty one, however far outside the range it is.
type Progress struct {
	ownership

	origin Point
	width  int
	min    int
	max    int
	value  int
}

// NewProgress creates a bar of the given total width, brackets included.
// The initial value is min.
func NewProgress(origin Point, width, min, max int) (*Progress, error) {
	if width < 2 {
		return nil, newConstructionError("progress", "width", width, ErrInvalidGeometry)
	}
	if min == max {
		return nil, newConstructionError("progress", "range", max-min, ErrInvalidRange)
	}
	return &Progress{
		origin: origin,
		width:  width,
		min:    min,
		max:    max,
		value:  min,
	}, nil
}

// Origin returns the position of the opening bracket.
func (p *Progress) Origin() Point { return p.origin }

// Width returns the total width including brackets.
func (p *Progress) Width() int { return p.width }

// Min returns the value that renders an empty bar.
func (p *Progress) Min() int { return p.min }

// Max returns the value that renders a full bar.
func (p *Progress) Max() int { return p.max }

// Value returns the current value.
func (p *Progress) Value() int { return p.value }

// SetValue sets the current value.
func (p *Progress) SetValue(v int) {
	p.value = v
}

// SetRange changes the bar's range. The value is left untouched.
func (p *Progress) SetRange(min, max int) error {
	if min == max {
		return newConstructionError("progress", "range", max-min, ErrInvalidRange)
	}
	p.min = min
	p.max = max
	return nil
}

// smallOperand bounds the values that take the plain int64 path of filled.
const smallOperand = 1 << 31

// filled returns the local column where the empty part begins, saturated
// to [0, width]. The -2 and +1 account for the brackets.
func (p *Progress) filled() int {
	v, lo, hi, span := int64(p.value), int64(p.min), int64(p.max), int64(p.width-2)
	if small(v) && small(lo) && small(hi) && span < smallOperand {
		return p.saturate((v-lo)*span/(hi-lo) + 1)
	}

	// Exact arithmetic for operands whose product would overflow.
	num := new(big.Int).Sub(big.NewInt(v), big.NewInt(lo))
	num.Mul(num, big.NewInt(span))
	den := new(big.Int).Sub(big.NewInt(hi), big.NewInt(lo))
	q := num.Quo(num, den)
	q.Add(q, big.NewInt(1))

	switch {
	case q.Sign() < 0:
		return 0
	case !q.IsInt64():
		return p.width
	default:
		return p.saturate(q.Int64())
	}
}

func (p *Progress) saturate(col int64) int {
	switch {
	case col < 0:
		return 0
	case col > int64(p.width):
		return p.width
	default:
		return int(col)
	}
}

func small(v int64) bool {
	return v > -smallOperand && v < smallOperand
}

// Render returns the bar character at (x, y).
func (p *Progress) Render(x, y int) (rune, bool) {
	lx := x - p.origin.X
	if y != p.origin.Y || lx < 0 || lx >= p.width {
		return 0, false
	}

	switch {
	case lx == 0:
		return ProgressOpen, true
	case lx == p.width-1:
		return ProgressClose, true
	case lx < p.filled():
		return ProgressFilled, true
	default:
		return ProgressEmpty, true
	}
}
