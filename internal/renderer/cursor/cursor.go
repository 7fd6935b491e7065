// Package cursor provides the cursor shape and blink state machine used by
// the compositor.
package cursor

import "time"

// DefaultBlinkRate is the interval between visibility toggles.
const DefaultBlinkRate = 500 * time.Millisecond

// Style is the drawn shape of a cursor.
type Style uint8

const (
	// StyleBar is a thin vertical rectangle before the character.
	StyleBar Style = iota
	// StyleBlock covers the whole cell.
	StyleBlock
	// StyleUnderline is a thin rectangle under the character.
	StyleUnderline
)

// StyleFromString converts a name to a style. Unknown names give StyleBar.
func StyleFromString(s string) Style {
	switch s {
	case "block":
		return StyleBlock
	case "underline", "underscore":
		return StyleUnderline
	default:
		return StyleBar
	}
}

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleBlock:
		return "block"
	case StyleUnderline:
		return "underline"
	default:
		return "bar"
	}
}

// Blinker toggles cursor visibility at a fixed rate. Any edit or movement
// resets it to visible so the cursor never vanishes while the user types.
type Blinker struct {
	rate    time.Duration
	enabled bool
	visible bool
	last    time.Time
}

// NewBlinker creates a visible blinker. A rate of zero or less disables
// blinking.
func NewBlinker(rate time.Duration, now time.Time) *Blinker {
	return &Blinker{
		rate:    rate,
		enabled: rate > 0,
		visible: true,
		last:    now,
	}
}

// Update advances the state machine to now. It returns true if the
// visibility changed.
func (b *Blinker) Update(now time.Time) bool {
	if !b.enabled {
		if !b.visible {
			b.visible = true
			return true
		}
		return false
	}
	elapsed := now.Sub(b.last)
	if elapsed < b.rate {
		return false
	}
	// Skip whole periods when frames were missed.
	periods := int64(elapsed / b.rate)
	b.last = b.last.Add(time.Duration(periods) * b.rate)
	if periods%2 == 1 {
		b.visible = !b.visible
		return true
	}
	return false
}

// Visible returns whether cursors are drawn this frame.
func (b *Blinker) Visible() bool {
	return b.visible
}

// Reset makes the cursor visible and restarts the period at now.
func (b *Blinker) Reset(now time.Time) {
	b.visible = true
	b.last = now
}

// NextToggle returns when the visibility will next change, for scheduling
// a redraw. ok is false when blinking is disabled.
func (b *Blinker) NextToggle() (t time.Time, ok bool) {
	if !b.enabled {
		return time.Time{}, false
	}
	return b.last.Add(b.rate), true
}
