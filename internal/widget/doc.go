// Package widget provides the character-cell widget tree.
//
// Every widget answers a single question: which character, if any, does it
// draw at a given cell. Coordinates passed to Render are always local to the
// receiver. A Panel translates coordinates into its own space before asking
// its children, so a child never sees root coordinates.
//
// Resolution order inside a Panel:
//
//	bounds check -> border -> children (first hit wins) -> fill
//
// Panels are opaque by default and answer ' ' for any in-bounds cell that
// nothing else claimed.
//
// Widgets are built and wired before rendering starts. Mutation (adding
// children, changing a label's text or a progress value) must happen between
// frames on the goroutine that renders; Render itself never mutates state.
package widget
