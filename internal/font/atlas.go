package font

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultCharset is the order glyphs appear in a strip atlas.
const DefaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz " +
	"0123456789,.\"'?!@_*#$%&()+-/:;<=>[\\]^`{|}~"

var (
	// ErrNoGlyph is returned when the atlas has no glyph for a character.
	ErrNoGlyph = errors.New("no glyph for character")

	// ErrAtlasTooSmall is returned when the image cannot hold the charset.
	ErrAtlasTooSmall = errors.New("atlas image too small for charset")
)

// Atlas maps characters to glyph rectangles of a mask image.
type Atlas struct {
	mask         image.Image
	glyphs       map[rune]image.Rectangle
	charset      string
	cellW, cellH int
}

// NewAtlas lays the characters of charset left to right across img, one
// cellW x cellH cell each. Only the alpha channel of img is used.
func NewAtlas(img image.Image, charset string, cellW, cellH int) (*Atlas, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", cellW, cellH)
	}

	chars := []rune(charset)
	b := img.Bounds()
	if len(chars)*cellW > b.Dx() || cellH > b.Dy() {
		return nil, fmt.Errorf("%w: need %dx%d, have %dx%d",
			ErrAtlasTooSmall, len(chars)*cellW, cellH, b.Dx(), b.Dy())
	}

	glyphs := make(map[rune]image.Rectangle, len(chars))
	for i, c := range chars {
		x := b.Min.X + i*cellW
		glyphs[c] = image.Rect(x, b.Min.Y, x+cellW, b.Min.Y+cellH)
	}

	return &Atlas{
		mask:    img,
		glyphs:  glyphs,
		charset: charset,
		cellW:   cellW,
		cellH:   cellH,
	}, nil
}

// LoadAtlas decodes a PNG strip from path.
func LoadAtlas(path, charset string, cellW, cellH int) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}

	return NewAtlas(img, charset, cellW, cellH)
}

// BasicAtlas renders DefaultCharset with the built-in 7x13 face.
func BasicAtlas() *Atlas {
	face := basicfont.Face7x13
	chars := []rune(DefaultCharset)

	strip := image.NewAlpha(image.Rect(0, 0, len(chars)*face.Advance, face.Height))
	drawer := &font.Drawer{
		Dst:  strip,
		Src:  image.White,
		Face: face,
	}
	for i, c := range chars {
		drawer.Dot = fixed.P(i*face.Advance, face.Ascent)
		drawer.DrawString(string(c))
	}

	atlas, err := NewAtlas(strip, DefaultCharset, face.Advance, face.Height)
	if err != nil {
		// The strip is sized from the charset above.
		panic(err)
	}
	return atlas
}

// Glyph returns the mask rectangle for c.
func (a *Atlas) Glyph(c rune) (image.Rectangle, bool) {
	r, ok := a.glyphs[c]
	return r, ok
}

// Has reports whether the atlas can draw c.
func (a *Atlas) Has(c rune) bool {
	_, ok := a.glyphs[c]
	return ok
}

// CellSize returns the glyph cell dimensions.
func (a *Atlas) CellSize() (width, height int) {
	return a.cellW, a.cellH
}

// Charset returns the characters in atlas order.
func (a *Atlas) Charset() string {
	return a.charset
}

// Mask returns the glyph image.
func (a *Atlas) Mask() image.Image {
	return a.mask
}
