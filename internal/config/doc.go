// Package config loads editor options from a TOML file with environment
// overrides and can watch the file for changes.
//
// Precedence, lowest first:
//
//  1. Built-in defaults (Default)
//  2. The TOML file, if it exists
//  3. SCRIBE_* environment variables
//
// Files are strict: a key the Options tree does not declare is a parse
// error, so typos surface instead of being silently ignored.
//
//	[editor]
//	tab_width = 4
//
//	[editor.margins]
//	top = 2
//
//	[render]
//	font_size = 18
//	cursor_style = "block"
//
//	[theme]
//	background = "#1e1e1e"
//	"syntax.keyword" = "#569cd6"
package config
