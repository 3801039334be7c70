package widget

// Label is a single row of text.
type Label struct {
	ownership

	origin Point
	text   []rune
}

// NewLabel creates a label whose first character sits at origin.
// The width is the number of characters in text, not its byte length.
func NewLabel(origin Point, text string) *Label {
	return &Label{
		origin: origin,
		text:   []rune(text),
	}
}

// Origin returns the position of the first character.
func (l *Label) Origin() Point {
	return l.origin
}

// Width returns the number of cells the label occupies.
func (l *Label) Width() int {
	return len(l.text)
}

// Text returns the label's text.
func (l *Label) Text() string {
	return string(l.text)
}

// SetText replaces the text. The width follows the new text.
func (l *Label) SetText(text string) {
	l.text = []rune(text)
}

// Append adds text to the end of the label.
func (l *Label) Append(text string) {
	l.text = append(l.text, []rune(text)...)
}

// Backspace removes the last character. It returns false if the label was
// already empty.
func (l *Label) Backspace() bool {
	if len(l.text) == 0 {
		return false
	}
	l.text = l.text[:len(l.text)-1]
	return true
}

// Render returns the character at (x, y), if the label covers that cell.
func (l *Label) Render(x, y int) (rune, bool) {
	lx := x - l.origin.X
	if y != l.origin.Y || lx < 0 || lx >= len(l.text) {
		return 0, false
	}
	return l.text[lx], true
}
