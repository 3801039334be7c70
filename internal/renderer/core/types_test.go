package core

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromRGB(t *testing.T) {
	c := ColorFromRGB(255, 128, 64)

	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(64), c.B)
	assert.False(t, c.Indexed)
	assert.False(t, c.IsDefault())
}

func TestColorFromIndex(t *testing.T) {
	c := ColorFromIndex(42)

	assert.Equal(t, uint8(42), c.R)
	assert.True(t, c.Indexed)
	assert.False(t, c.IsDefault())
	assert.Equal(t, "idx(42)", c.String())
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false}, // Short form
		{"#000", 0, 0, 0, false},
		{"#173659", 23, 54, 89, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
		{"#FF80401", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ColorFromRGB(tt.r, tt.g, tt.b), c)
		})
	}
}

func TestColorFromHexDefault(t *testing.T) {
	c, err := ColorFromHex("default")
	require.NoError(t, err)
	assert.True(t, c.IsDefault())
	assert.Equal(t, "default", c.String())
}

func TestColorEquals(t *testing.T) {
	c1 := ColorFromRGB(255, 128, 64)
	c2 := ColorFromRGB(255, 128, 64)
	c3 := ColorFromRGB(255, 128, 65)
	c4 := ColorFromIndex(10)
	c5 := ColorFromIndex(10)

	assert.True(t, c1.Equals(c2))
	assert.False(t, c1.Equals(c3))
	assert.True(t, c4.Equals(c5))
	assert.False(t, c1.Equals(c4))
	assert.True(t, ColorDefault.Equals(Color{Default: true, R: 9}))
}

func TestColorRGBA(t *testing.T) {
	fallback := color.RGBA{A: 0xff}

	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xff}, ColorFromRGB(1, 2, 3).RGBA(fallback))
	assert.Equal(t, fallback, ColorDefault.RGBA(fallback))
	assert.Equal(t, fallback, ColorFromIndex(3).RGBA(fallback))
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().
		WithForeground(ColorRed).
		WithBackground(ColorBlue).
		WithAttributes(AttrBold.With(AttrReverse))

	assert.True(t, s.Foreground.Equals(ColorRed))
	assert.True(t, s.Background.Equals(ColorBlue))
	assert.True(t, s.Attributes.Has(AttrBold))
	assert.True(t, s.Attributes.Has(AttrReverse))
	assert.False(t, s.Attributes.Has(AttrItalic))
	assert.False(t, s.Equals(DefaultStyle()))
}

func TestCellWidths(t *testing.T) {
	assert.Equal(t, 1, NewCell('a').Width)
	assert.Equal(t, 2, NewCell('世').Width)
	assert.Equal(t, 1, EmptyCell().Width)
	assert.True(t, NewCell(' ').Equals(EmptyCell()))
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)

	assert.Equal(t, NewScreenRect(2, 3, 6, 8), r)
	assert.Equal(t, 5, r.Width())
	assert.Equal(t, 4, r.Height())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(3, 2))
	assert.False(t, r.Contains(8, 2))
	assert.False(t, r.Contains(3, 6))
	assert.True(t, NewScreenRect(5, 5, 2, 2).IsEmpty())
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		in   string
		want Attribute
	}{
		{"", AttrNone},
		{"none", AttrNone},
		{"bold", AttrBold},
		{"Bold, REVERSE", AttrBold | AttrReverse},
		{"dim italic\tunderline", AttrDim | AttrItalic | AttrUnderline},
		{"blink,,", AttrBlink},
	}
	for _, tt := range tests {
		got, err := ParseAttributes(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseAttributes("bold, sparkly")
	assert.ErrorContains(t, err, "sparkly")
}
