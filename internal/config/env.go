package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "SCRIBE_"

// envSetter applies one variable's raw value.
type envSetter func(o *Options, raw string) error

func intVar(field func(*Options) *int) envSetter {
	return func(o *Options, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		*field(o) = n
		return nil
	}
}

func floatVar(field func(*Options) *float64) envSetter {
	return func(o *Options, raw string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		*field(o) = f
		return nil
	}
}

func boolVar(field func(*Options) *bool) envSetter {
	return func(o *Options, raw string) error {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "1", "true", "yes", "on":
			*field(o) = true
		case "0", "false", "no", "off":
			*field(o) = false
		default:
			return fmt.Errorf("not a boolean: %q", raw)
		}
		return nil
	}
}

func stringVar(field func(*Options) *string) envSetter {
	return func(o *Options, raw string) error {
		*field(o) = raw
		return nil
	}
}

// envVars maps SCRIBE_* names to the option they override. Names are the
// TOML path upper-cased with dots and nesting flattened to underscores.
var envVars = map[string]envSetter{
	"EDITOR_TAB_WIDTH":      intVar(func(o *Options) *int { return &o.Editor.TabWidth }),
	"EDITOR_MARGINS_TOP":    intVar(func(o *Options) *int { return &o.Editor.Margins.Top }),
	"EDITOR_MARGINS_BOTTOM": intVar(func(o *Options) *int { return &o.Editor.Margins.Bottom }),
	"EDITOR_MARGINS_LEFT":   intVar(func(o *Options) *int { return &o.Editor.Margins.Left }),
	"EDITOR_MARGINS_RIGHT":  intVar(func(o *Options) *int { return &o.Editor.Margins.Right }),
	"EDITOR_PAGE_OVERLAP":   intVar(func(o *Options) *int { return &o.Editor.PageOverlap }),
	"EDITOR_MAX_UNDO":       intVar(func(o *Options) *int { return &o.Editor.MaxUndo }),

	"RENDER_FONT":                 stringVar(func(o *Options) *string { return &o.Render.Font }),
	"RENDER_FONT_SIZE":            floatVar(func(o *Options) *float64 { return &o.Render.FontSize }),
	"RENDER_DPI":                  floatVar(func(o *Options) *float64 { return &o.Render.DPI }),
	"RENDER_LINE_SPACING":         floatVar(func(o *Options) *float64 { return &o.Render.LineSpacing }),
	"RENDER_CURSOR_BLINK_MS":      intVar(func(o *Options) *int { return &o.Render.CursorBlinkMS }),
	"RENDER_CURSOR_WIDTH":         intVar(func(o *Options) *int { return &o.Render.CursorWidth }),
	"RENDER_CURSOR_STYLE":         stringVar(func(o *Options) *string { return &o.Render.CursorStyle }),
	"RENDER_GLYPH_CACHE_CAPACITY": intVar(func(o *Options) *int { return &o.Render.GlyphCacheCapacity }),
	"RENDER_GUTTER_PADDING":       intVar(func(o *Options) *int { return &o.Render.GutterPadding }),
	"RENDER_TEXT_PADDING":         intVar(func(o *Options) *int { return &o.Render.TextPadding }),
	"RENDER_SHOW_STATUS":          boolVar(func(o *Options) *bool { return &o.Render.ShowStatus }),

	"STATUS_PADDING":           intVar(func(o *Options) *int { return &o.Status.Padding }),
	"STATUS_SEPARATOR_SPACING": intVar(func(o *Options) *int { return &o.Status.SeparatorSpacing }),
	"STATUS_MESSAGE_MS":        intVar(func(o *Options) *int { return &o.Status.MessageMS }),

	"LOG_LEVEL":  stringVar(func(o *Options) *string { return &o.Log.Level }),
	"LOG_FORMAT": stringVar(func(o *Options) *string { return &o.Log.Format }),
}

// EnvNames returns every recognized variable name, sorted.
func EnvNames() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, EnvPrefix+name)
	}
	sort.Strings(names)
	return names
}

// applyEnv overrides opts from the environment. Set but empty variables
// are ignored.
func applyEnv(opts *Options, lookup func(string) (string, bool)) error {
	for _, name := range EnvNames() {
		raw, ok := lookup(name)
		if !ok || raw == "" {
			continue
		}
		set := envVars[strings.TrimPrefix(name, EnvPrefix)]
		if err := set(opts, raw); err != nil {
			return fmt.Errorf("environment %s: %w", name, err)
		}
	}
	return nil
}
