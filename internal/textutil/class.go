package textutil

import (
	"strings"
	"unicode"
)

// CharClass groups runes for word navigation.
type CharClass uint8

const (
	// Whitespace covers unicode.IsSpace runes.
	Whitespace CharClass = iota
	// Word covers letters, digits, underscore and anything not listed as
	// punctuation.
	Word
	// Punctuation covers the ASCII symbols that break words.
	Punctuation
)

// String returns the class name.
func (c CharClass) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Word:
		return "word"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

const punctuation = "/:,.-(){}[];\"'<>=+*&|!@#$%^~`\\?"

// IsPunctuation reports whether r is a word-breaking symbol.
func IsPunctuation(r rune) bool {
	return r < 0x80 && strings.ContainsRune(punctuation, r)
}

// Class returns the class of r.
func Class(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case IsPunctuation(r):
		return Punctuation
	default:
		return Word
	}
}

// IsWordBoundary reports whether r separates words.
func IsWordBoundary(r rune) bool {
	return Class(r) != Word
}

// PrevWordStart returns the column reached by moving left from col over one
// run of same-class runes. Whitespace forms its own run.
func PrevWordStart(line []rune, col int) int {
	col = min(max(col, 0), len(line))
	if col == 0 {
		return 0
	}
	class := Class(line[col-1])
	for col > 0 && Class(line[col-1]) == class {
		col--
	}
	return col
}

// NextWordEnd returns the column reached by moving right from col over one
// run of same-class runes.
func NextWordEnd(line []rune, col int) int {
	col = min(max(col, 0), len(line))
	if col == len(line) {
		return col
	}
	class := Class(line[col])
	for col < len(line) && Class(line[col]) == class {
		col++
	}
	return col
}

// WordAt returns the bounds of the run of word runes touching col. The rune
// at col is preferred over the rune before it. ok is false when neither is
// a word rune.
func WordAt(line []rune, col int) (start, end int, ok bool) {
	col = min(max(col, 0), len(line))
	switch {
	case col < len(line) && Class(line[col]) == Word:
	case col > 0 && Class(line[col-1]) == Word:
		col--
	default:
		return 0, 0, false
	}
	start, end = col, col+1
	for start > 0 && Class(line[start-1]) == Word {
		start--
	}
	for end < len(line) && Class(line[end]) == Word {
		end++
	}
	return start, end, true
}

// IsWordSpan reports whether [start, end) covers exactly one word.
func IsWordSpan(line []rune, start, end int) bool {
	if start < 0 || end > len(line) || start >= end {
		return false
	}
	for _, r := range line[start:end] {
		if Class(r) != Word {
			return false
		}
	}
	if start > 0 && Class(line[start-1]) == Word {
		return false
	}
	return end == len(line) || Class(line[end]) != Word
}

// FirstNonBlank returns the column of the first non-whitespace rune, or the
// line length when the line is blank.
func FirstNonBlank(line []rune) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}
