package viewport

// MarginConfig holds scroll margin configuration.
type MarginConfig struct {
	Top    int // Lines to keep above cursor
	Bottom int // Lines to keep below cursor
	Left   int // Columns to keep left of cursor
	Right  int // Columns to keep right of cursor
}

// DefaultMargins returns the default margins: one line vertically and four
// columns horizontally.
func DefaultMargins() MarginConfig {
	return MarginConfig{
		Top:    1,
		Bottom: 1,
		Left:   4,
		Right:  4,
	}
}

// NoMargins returns zero margins (cursor can go to edge).
func NoMargins() MarginConfig {
	return MarginConfig{}
}

// SetMargins sets the scroll margins. Negative values become zero.
func (v *Viewport) SetMargins(m MarginConfig) {
	v.margins = MarginConfig{
		Top:    max(m.Top, 0),
		Bottom: max(m.Bottom, 0),
		Left:   max(m.Left, 0),
		Right:  max(m.Right, 0),
	}
}

// Margins returns the configured scroll margins.
func (v *Viewport) Margins() MarginConfig {
	return v.margins
}

// maxMarginRatio limits margins to 1/3 of viewport dimension to ensure
// there's always usable space in the center.
const maxMarginRatio = 3

// EffectiveMargins returns margins adjusted for viewport size.
// Ensures margins don't exceed 1/3 of the viewport dimensions.
func (v *Viewport) EffectiveMargins() MarginConfig {
	m := v.margins
	maxVertical := v.lines / maxMarginRatio
	maxHorizontal := v.columns / maxMarginRatio
	m.Top = min(m.Top, maxVertical)
	m.Bottom = min(m.Bottom, maxVertical)
	m.Left = min(m.Left, maxHorizontal)
	m.Right = min(m.Right, maxHorizontal)
	return m
}

// CursorZone represents where the cursor is relative to margins.
type CursorZone uint8

const (
	ZoneCenter       CursorZone = iota // Cursor is in comfortable zone
	ZoneTopMargin                      // Cursor is in top margin
	ZoneBottomMargin                   // Cursor is in bottom margin
	ZoneLeftMargin                     // Cursor is in left margin
	ZoneRightMargin                    // Cursor is in right margin
	ZoneAbove                          // Cursor is above viewport
	ZoneBelow                          // Cursor is below viewport
	ZoneLeft                           // Cursor is left of viewport
	ZoneRight                          // Cursor is right of viewport
)

// CursorZones returns the vertical and horizontal zones of a position
// given in lines and visual columns.
func (v *Viewport) CursorZones(line, col int) (vertical, horizontal CursorZone) {
	m := v.EffectiveMargins()

	row := line - v.topLine
	switch {
	case row < 0:
		vertical = ZoneAbove
	case row >= v.lines:
		vertical = ZoneBelow
	case row < m.Top:
		vertical = ZoneTopMargin
	case row >= v.lines-m.Bottom:
		vertical = ZoneBottomMargin
	default:
		vertical = ZoneCenter
	}

	screenCol := col - v.leftColumn
	switch {
	case screenCol < 0:
		horizontal = ZoneLeft
	case screenCol >= v.columns:
		horizontal = ZoneRight
	case screenCol < m.Left:
		horizontal = ZoneLeftMargin
	case screenCol >= v.columns-m.Right:
		horizontal = ZoneRightMargin
	default:
		horizontal = ZoneCenter
	}
	return vertical, horizontal
}
