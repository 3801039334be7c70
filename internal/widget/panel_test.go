package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPanel(t *testing.T, rect Rect, border bool, opts ...PanelOption) *Panel {
	t.Helper()
	p, err := NewPanel(rect, border, opts...)
	require.NoError(t, err)
	return p
}

func renderAt(r Renderable, x, y int) string {
	ch, ok := r.Render(x, y)
	if !ok {
		return "<none>"
	}
	return string(ch)
}

func TestPanelBorder(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 10, 4), true)

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"top left corner", 0, 0, "+"},
		{"top right corner", 10, 0, "+"},
		{"bottom left corner", 0, 4, "+"},
		{"bottom right corner", 10, 4, "+"},
		{"top edge", 5, 0, "-"},
		{"bottom edge", 5, 4, "-"},
		{"left edge", 0, 2, "|"},
		{"right edge", 10, 2, "|"},
		{"interior", 5, 2, " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderAt(p, tt.x, tt.y))
		})
	}
}

func TestPanelOpaqueInterior(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 10, 4), true)

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 9; x++ {
			ch, ok := p.Render(x, y)
			require.True(t, ok, "cell (%d,%d)", x, y)
			assert.Equal(t, ' ', ch, "cell (%d,%d)", x, y)
		}
	}
}

func TestPanelBoundsInclusive(t *testing.T) {
	p := mustPanel(t, NewRect(2, 3, 4, 2), false)

	for y := -1; y <= 8; y++ {
		for x := -1; x <= 10; x++ {
			inside := x >= 2 && x <= 6 && y >= 3 && y <= 5
			_, ok := p.Render(x, y)
			assert.Equal(t, inside, ok, "cell (%d,%d)", x, y)
		}
	}
}

func TestPanelCoordinateTranslation(t *testing.T) {
	p := mustPanel(t, NewRect(5, 5, 10, 10), false)
	require.NoError(t, p.AddChild(NewLabel(Pt(1, 1), "Hi")))

	// (7,6) -> panel local (2,1) -> label local (1,0)
	assert.Equal(t, "i", renderAt(p, 7, 6))
	assert.Equal(t, "H", renderAt(p, 6, 6))
	assert.Equal(t, " ", renderAt(p, 8, 6))
	assert.Equal(t, " ", renderAt(p, 10, 6))
	assert.Equal(t, "<none>", renderAt(p, 4, 6))
}

func TestPanelNestedTranslation(t *testing.T) {
	outer := mustPanel(t, NewRect(1, 1, 20, 10), true)
	inner := mustPanel(t, NewRect(3, 2, 8, 4), true)
	require.NoError(t, inner.AddChild(NewLabel(Pt(1, 1), "ok")))
	require.NoError(t, outer.AddChild(inner))

	// inner origin is (4,3) in root space, label starts one further in
	assert.Equal(t, "+", renderAt(outer, 4, 3))
	assert.Equal(t, "o", renderAt(outer, 5, 4))
	assert.Equal(t, "k", renderAt(outer, 6, 4))
	assert.Equal(t, "+", renderAt(outer, 12, 7))
}

func TestPanelChildPriority(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 10, 3), false)
	a := NewLabel(Pt(0, 1), "AAAA")
	b := NewLabel(Pt(2, 1), "BBBB")
	require.NoError(t, p.AddChild(a))
	require.NoError(t, p.AddChild(b))

	assert.Equal(t, "A", renderAt(p, 2, 1))
	assert.Equal(t, "A", renderAt(p, 3, 1))
	assert.Equal(t, "B", renderAt(p, 4, 1))
	assert.Equal(t, "B", renderAt(p, 5, 1))
}

func TestPanelBorderBeatsChildren(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 5, 2), true)
	require.NoError(t, p.AddChild(NewLabel(Pt(0, 0), "XXXXXX")))

	assert.Equal(t, "+", renderAt(p, 0, 0))
	assert.Equal(t, "-", renderAt(p, 3, 0))
}

func TestPanelChildOcclusion(t *testing.T) {
	root := mustPanel(t, NewRect(0, 0, 20, 6), false)
	front := mustPanel(t, NewRect(2, 1, 4, 2), true)
	back := NewLabel(Pt(0, 2), "abcdefghij")
	require.NoError(t, root.AddChild(front))
	require.NoError(t, root.AddChild(back))

	// front panel hides the label where they overlap, including its fill
	assert.Equal(t, "|", renderAt(root, 2, 2))
	assert.Equal(t, " ", renderAt(root, 3, 2))
	assert.Equal(t, "b", renderAt(root, 1, 2))
	assert.Equal(t, "h", renderAt(root, 7, 2))
}

func TestPanelTransparent(t *testing.T) {
	root := mustPanel(t, NewRect(0, 0, 10, 4), false)
	glass := mustPanel(t, NewRect(0, 0, 6, 2), true, WithTransparent())
	require.NoError(t, root.AddChild(glass))
	require.NoError(t, root.AddChild(NewLabel(Pt(1, 1), "seen")))

	assert.True(t, glass.Transparent())
	assert.Equal(t, "s", renderAt(root, 1, 1))
	assert.Equal(t, "+", renderAt(root, 0, 0))

	_, ok := glass.Render(3, 1)
	assert.False(t, ok)
}

func TestPanelInvalidGeometry(t *testing.T) {
	_, err := NewPanel(NewRect(0, 0, -1, 4), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "panel", cerr.Widget)
	assert.Equal(t, "width", cerr.Field)
	assert.Equal(t, -1, cerr.Value)

	_, err = NewPanel(NewRect(0, 0, 4, -2), false)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	p, err := NewPanel(NewRect(0, 0, 0, 0), true)
	require.NoError(t, err)
	assert.Equal(t, "+", renderAt(p, 0, 0))
}

func TestPanelAddChildOwnership(t *testing.T) {
	a := mustPanel(t, NewRect(0, 0, 10, 10), false)
	b := mustPanel(t, NewRect(0, 0, 10, 10), false)
	label := NewLabel(Pt(0, 0), "x")

	require.NoError(t, a.AddChild(label))
	assert.ErrorIs(t, b.AddChild(label), ErrAlreadyOwned)
	assert.ErrorIs(t, a.AddChild(nil), ErrNilChild)
	assert.ErrorIs(t, a.AddChild(a), ErrCycle)

	require.NoError(t, a.AddChild(b))
	assert.ErrorIs(t, b.AddChild(a), ErrCycle)
	assert.Len(t, a.Children(), 2)
}

func TestPanelChildrenCopy(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 4, 4), false)
	require.NoError(t, p.AddChild(NewLabel(Pt(0, 0), "a")))

	children := p.Children()
	children[0] = nil
	assert.NotNil(t, p.Children()[0])
}

func TestPanelCustomRenderable(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 4, 4), false)
	dot := RenderFunc(func(x, y int) (rune, bool) {
		if x == y {
			return '.', true
		}
		return 0, false
	})
	require.NoError(t, p.AddChild(dot))

	assert.Equal(t, ".", renderAt(p, 2, 2))
	assert.Equal(t, " ", renderAt(p, 2, 1))
}

func TestPanelIdempotent(t *testing.T) {
	p := mustPanel(t, NewRect(0, 0, 12, 5), true)
	progress, err := NewProgress(Pt(1, 1), 8, 0, 6)
	require.NoError(t, err)
	progress.SetValue(3)
	require.NoError(t, p.AddChild(progress))
	require.NoError(t, p.AddChild(NewLabel(Pt(1, 2), "idle")))

	first := RenderGrid(p, 14, 7)
	second := RenderGrid(p, 14, 7)
	assert.Equal(t, first, second)
}
