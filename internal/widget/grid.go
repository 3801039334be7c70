package widget

import "strings"

// RenderGrid resolves every cell of a cols x rows grid through r and
// returns one string per row. Cells r has no opinion about become spaces.
func RenderGrid(r Renderable, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	lines := make([]string, rows)
	var sb strings.Builder
	for y := 0; y < rows; y++ {
		sb.Reset()
		for x := 0; x < cols; x++ {
			if ch, ok := r.Render(x, y); ok {
				sb.WriteRune(ch)
			} else {
				sb.WriteByte(' ')
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
