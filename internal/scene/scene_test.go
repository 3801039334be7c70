package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cellpanel/internal/widget"
)

func TestDefaultScene(t *testing.T) {
	s := Default()

	want := []string{
		"+-------------------------------+",
		"|Hello!                         |",
		"|  +---------+                  |",
		"|  |     +--------+             |",
		"|  |     |[===== ]|----+        |",
		"|  |     |        |    |        |",
		"|  +-----|        |    |        |",
		"|        +--------+    |        |",
		"|              |       |        |",
		"|              +-------+        |",
		"+-------------------------------+",
	}
	assert.Equal(t, want, widget.RenderGrid(s.Root, 33, 11))

	p, ok := s.Registry.Progress("progress")
	require.True(t, ok)
	assert.Equal(t, 0, p.Min())
	assert.Equal(t, 6, p.Max())
	assert.Equal(t, 5, p.Value())

	l, ok := s.Registry.Label("greeting")
	require.True(t, ok)
	assert.Same(t, l, s.Input)
	assert.Equal(t, []string{"greeting", "main", "progress"}, s.Registry.Names())
}

func TestLoadFormats(t *testing.T) {
	for _, name := range []string{"hud.toml", "hud.yaml"} {
		t.Run(name, func(t *testing.T) {
			f, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "prompt", f.Input)
			assert.Equal(t, KindPanel, f.Root.Kind)
			require.Len(t, f.Root.Children, 2)
			require.NotNil(t, f.Root.Children[1].Value)
			assert.Equal(t, 50, *f.Root.Children[1].Value)

			s, err := Build(f)
			require.NoError(t, err)
			assert.Equal(t, []string{
				"+-------------------+ ",
				"|>                  | ",
				"|                   | ",
				"|[====    ]         | ",
				"+-------------------+ ",
			}, widget.RenderGrid(s.Root, 22, 5))
			assert.Equal(t, "> ", s.Input.Text())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "scene.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("root: [unclosed"), 0o644))
	_, err = Load(bad)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.Path)
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(DefaultFile(), format)
			require.NoError(t, err)

			f, err := Parse(data, format)
			require.NoError(t, err)

			s, err := Build(f)
			require.NoError(t, err)
			assert.Equal(t,
				widget.RenderGrid(Default().Root, 33, 11),
				widget.RenderGrid(s.Root, 33, 11))
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		file File
		want error
	}{
		{
			name: "root not panel",
			file: File{Root: Node{Kind: KindLabel}},
			want: ErrRootNotPanel,
		},
		{
			name: "unknown kind",
			file: File{Root: Node{Kind: KindPanel, Children: []Node{{Kind: "button"}}}},
			want: ErrUnknownKind,
		},
		{
			name: "duplicate name",
			file: File{Root: Node{Kind: KindPanel, Children: []Node{
				{Kind: KindLabel, Name: "a"},
				{Kind: KindProgress, Name: "a", Width: 4},
			}}},
			want: ErrDuplicateName,
		},
		{
			name: "negative panel size",
			file: File{Root: Node{Kind: KindPanel, Width: -1}},
			want: widget.ErrInvalidGeometry,
		},
		{
			name: "narrow progress",
			file: File{Root: Node{Kind: KindPanel, Children: []Node{{Kind: KindProgress, Width: 1}}}},
			want: widget.ErrInvalidGeometry,
		},
		{
			name: "empty range",
			file: File{Root: Node{Kind: KindPanel, Children: []Node{{Kind: KindProgress, Width: 4, Min: 3, Max: 3}}}},
			want: widget.ErrInvalidRange,
		},
		{
			name: "children under label",
			file: File{Root: Node{Kind: KindPanel, Children: []Node{{Kind: KindLabel, Children: []Node{{Kind: KindLabel}}}}}},
			want: ErrUnexpectedChildren,
		},
		{
			name: "input not a label",
			file: File{Input: "bar", Root: Node{Kind: KindPanel, Children: []Node{{Kind: KindProgress, Name: "bar", Width: 4}}}},
			want: ErrBadInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.file)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildErrorPath(t *testing.T) {
	f := File{Root: Node{Kind: KindPanel, Children: []Node{
		{Kind: KindPanel, Children: []Node{{Kind: KindProgress, Name: "bar", Width: 0}}},
	}}}

	_, err := Build(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root.children[0].children[0](bar)")
}

func TestProgressDefaults(t *testing.T) {
	f := File{Root: Node{Kind: KindPanel, Width: 12, Height: 2, Children: []Node{
		{Kind: KindProgress, Name: "a", Width: 10},
		{Kind: KindProgress, Name: "b", Width: 10, Min: 10, Max: 20},
	}}}

	s, err := Build(f)
	require.NoError(t, err)

	a, _ := s.Registry.Progress("a")
	assert.Equal(t, 0, a.Min())
	assert.Equal(t, 8, a.Max())
	assert.Equal(t, 0, a.Value())

	b, _ := s.Registry.Progress("b")
	assert.Equal(t, 10, b.Value())
}

func TestTransparentPanel(t *testing.T) {
	f := File{Root: Node{Kind: KindPanel, Width: 3, Height: 0, Transparent: true}}

	s, err := Build(f)
	require.NoError(t, err)
	assert.True(t, s.Root.Transparent())
	assert.Equal(t, []string{"    "}, widget.RenderGrid(s.Root, 4, 1))
}
