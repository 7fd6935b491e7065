// Package textutil provides character classification and column arithmetic
// shared by the editor and the renderer.
//
// Character columns count code points. Visual columns count terminal-style
// cells: tabs advance to the next tab stop and East Asian wide runes take
// two cells.
package textutil
