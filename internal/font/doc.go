// Package font draws characters from a bitmap glyph atlas into an RGBA image.
//
// An Atlas maps characters to rectangles of a mask image laid out as a
// single strip, one fixed-size cell per character. A Surface owns the
// target image and positions cells on a character grid with a margin and
// extra spacing between rows.
package font
