package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop interval used when none is configured.
const DefaultTabWidth = 4

func tabWidthOr(w int) int {
	if w < 1 {
		return DefaultTabWidth
	}
	return w
}

// NextTabStop returns the first tab stop strictly after visual column col.
func NextTabStop(col, tabWidth int) int {
	tabWidth = tabWidthOr(tabWidth)
	return col + tabWidth - col%tabWidth
}

// RuneCells returns the number of cells r occupies at visual column col.
func RuneCells(r rune, col, tabWidth int) int {
	if r == '\t' {
		return NextTabStop(col, tabWidth) - col
	}
	return runewidth.RuneWidth(r)
}

// VisualColumn converts a character column on line to a visual column.
// Columns past the end of the line extend one cell per column.
func VisualColumn(line string, charCol, tabWidth int) int {
	visual, i := 0, 0
	for _, r := range line {
		if i >= charCol {
			return visual
		}
		visual += RuneCells(r, visual, tabWidth)
		i++
	}
	if charCol > i {
		visual += charCol - i
	}
	return visual
}

// CharColumn converts a visual column to the character column of the first
// rune starting at or after it. A visual column inside a tab or a wide rune
// maps to the column after that rune. The result never exceeds the line
// length.
func CharColumn(line string, visualCol, tabWidth int) int {
	visual, i := 0, 0
	for _, r := range line {
		if visual >= visualCol {
			return i
		}
		visual += RuneCells(r, visual, tabWidth)
		i++
	}
	return i
}

// NearestCharColumn is like CharColumn but rounds to the closer boundary,
// which is what a mouse hit-test wants.
func NearestCharColumn(line string, visualCol, tabWidth int) int {
	visual, i := 0, 0
	for _, r := range line {
		w := RuneCells(r, visual, tabWidth)
		if visualCol < visual+(w+1)/2 {
			return i
		}
		visual += w
		i++
	}
	return i
}

// VisualWidth returns the cell width of line with tabs expanded.
func VisualWidth(line string, tabWidth int) int {
	visual := 0
	for _, r := range line {
		visual += RuneCells(r, visual, tabWidth)
	}
	return visual
}

// ExpandTabs replaces each tab with spaces up to the next tab stop.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	sb.Grow(len(line) + 8)
	visual := 0
	for _, r := range line {
		if r == '\t' {
			n := NextTabStop(visual, tabWidth) - visual
			sb.WriteString(strings.Repeat(" ", n))
			visual += n
			continue
		}
		sb.WriteRune(r)
		visual += runewidth.RuneWidth(r)
	}
	return sb.String()
}
