package renderer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/scribe/internal/renderer/frame"
)

// Theme is the color table the compositor draws with.
type Theme struct {
	Background      frame.Color
	Foreground      frame.Color
	CurrentLine     frame.Color
	Selection       frame.Color
	Cursor          frame.Color
	SecondaryCursor frame.Color

	RectangleFill   frame.Color
	RectangleCursor frame.Color

	GutterBackground frame.Color
	GutterForeground frame.Color
	GutterActive     frame.Color
	GutterBorder     frame.Color

	StatusBackground frame.Color
	StatusForeground frame.Color
	StatusSeparator  frame.Color

	// Syntax maps token names to colors for a Highlighter.
	Syntax map[string]frame.Color
}

func mustHex(s string) frame.Color {
	c, err := frame.ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultTheme returns a dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background:      mustHex("#1e1e1e"),
		Foreground:      mustHex("#d4d4d4"),
		CurrentLine:     mustHex("#2a2d2e"),
		Selection:       mustHex("#264f78"),
		Cursor:          mustHex("#aeafad"),
		SecondaryCursor: mustHex("#7f7f7f"),

		RectangleFill:   mustHex("#264f7880"),
		RectangleCursor: mustHex("#c586c0"),

		GutterBackground: mustHex("#1e1e1e"),
		GutterForeground: mustHex("#858585"),
		GutterActive:     mustHex("#c6c6c6"),
		GutterBorder:     mustHex("#333333"),

		StatusBackground: mustHex("#007acc"),
		StatusForeground: mustHex("#ffffff"),
		StatusSeparator:  mustHex("#ffffff60"),

		Syntax: map[string]frame.Color{
			"keyword": mustHex("#569cd6"),
			"string":  mustHex("#ce9178"),
			"comment": mustHex("#6a9955"),
			"number":  mustHex("#b5cea8"),
		},
	}
}

// fields maps table keys to theme slots.
func (t *Theme) fields() map[string]*frame.Color {
	return map[string]*frame.Color{
		"background":        &t.Background,
		"foreground":        &t.Foreground,
		"current_line":      &t.CurrentLine,
		"selection":         &t.Selection,
		"cursor":            &t.Cursor,
		"secondary_cursor":  &t.SecondaryCursor,
		"rectangle_fill":    &t.RectangleFill,
		"rectangle_cursor":  &t.RectangleCursor,
		"gutter_background": &t.GutterBackground,
		"gutter_foreground": &t.GutterForeground,
		"gutter_active":     &t.GutterActive,
		"gutter_border":     &t.GutterBorder,
		"status_background": &t.StatusBackground,
		"status_foreground": &t.StatusForeground,
		"status_separator":  &t.StatusSeparator,
	}
}

// ThemeFromMap overlays hex colors onto the default theme. Keys are the
// snake_case slot names; keys prefixed with "syntax." set token colors.
// The first unknown key or malformed color is returned as an error.
func ThemeFromMap(m map[string]string) (Theme, error) {
	t := DefaultTheme()
	fields := t.fields()
	for _, key := range slices.Sorted(maps.Keys(m)) {
		c, err := frame.ParseHex(m[key])
		if err != nil {
			return t, fmt.Errorf("theme %s: %w", key, err)
		}
		if name, ok := strings.CutPrefix(key, "syntax."); ok && name != "" {
			t.Syntax[name] = c
			continue
		}
		slot, ok := fields[key]
		if !ok {
			return t, fmt.Errorf("theme: unknown color %q", key)
		}
		*slot = c
	}
	return t, nil
}
